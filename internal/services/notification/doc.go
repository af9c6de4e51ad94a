// Package notification delivers best-effort customer notifications for
// wallet activity. Each hook logs a mail-style message and, when a
// publisher is wired, emits a broker event. Failures here never affect
// the committed operation that triggered them.
package notification
