package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingRequestValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"room_id",
			"time_slot",
			"participant_emails",
			"description",
			"status",
			"created_by",
			"version",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"room_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"time_slot": bson.M{
				"bsonType": "object",
				"required": []string{"start_at", "end_at"},
				"properties": bson.M{
					"start_at": bson.M{
						"bsonType": "date",
					},
					"end_at": bson.M{
						"bsonType": "date",
					},
				},
			},

			"participant_emails": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"description": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 1000,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"draft",
					"submitted",
					"confirmed",
					"declined",
					"cancelled",
				},
			},

			"created_by": bson.M{
				"bsonType": "string",
			},

			"transitions": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"from_status", "to_status", "actor_id", "occurred_at"},
				},
			},

			"version": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
