// Package lib holds modules that do not fit strictly into other layers:
// background job processing (Redis/Asynq) and the Resend email client.
package lib
