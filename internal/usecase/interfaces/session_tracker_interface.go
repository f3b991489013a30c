package interfaces

// ISessionTracker schedules a newly created session for status reconciliation.
type ISessionTracker interface {
	Track(sessionID string)
}
