/*
Package reply holds what every package of a reply app shares:
the Environment an app runs in, helpers for reading configuration from environment variables,
context keys, log masking, the Enumerable interface and sentinel errors.

The response builder itself lives in [github.com/xy-planning-network/reply/http/resp].
*/
package reply
