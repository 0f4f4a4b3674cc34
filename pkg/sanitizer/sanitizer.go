// Package sanitizer normalizes free-text input before validation: collapsed
// whitespace for names and labels, lowercase for emails, de-duplicated
// slices. Sanitization never rejects input; validation does.
package sanitizer
