package handlers

// HandlerBundle groups the handler sets wired up in main for route
// registration.
type HandlerBundle struct {
	Widget   *WidgetHandler
	Settings *SettingsHandler
	Bookings *BookingRecordsHandler
}
