// Package notifications delivers status-change events to interested
// audiences after the owning transaction commits. It owns actor resolution
// and audience fan-out; the wire transport lives behind ports.EventPublisher.
package notifications
