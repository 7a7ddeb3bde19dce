// Package metrics contains the append-only order metrics record and the
// derived measures captured with it: order complexity scoring and kitchen
// load percentage. A record is written on every order status change and is
// never modified afterwards.
package metrics
