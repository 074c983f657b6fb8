package entity

// The static catalog of integration offerings. The UI lists all of them,
// connected or not, so the maps below cover every app type regardless of
// which ones have a registered provider implementation.

var appTypeProvider = map[AppType]Provider{
	AppTypeGoogleMeetAndCalendar: ProviderGoogle,
	AppTypeZoomMeeting:           ProviderZoom,
	AppTypeOutlookCalendar:       ProviderMicrosoft,
}

var appTypeTitle = map[AppType]string{
	AppTypeGoogleMeetAndCalendar: "Google Meet & Calendar",
	AppTypeZoomMeeting:           "Zoom",
	AppTypeOutlookCalendar:       "Microsoft Outlook",
}

var appTypeCategory = map[AppType]Category{
	AppTypeGoogleMeetAndCalendar: CategoryCalendarAndVideoConf,
	AppTypeZoomMeeting:           CategoryVideoConferencing,
	AppTypeOutlookCalendar:       CategoryCalendar,
}

// AllAppTypes returns the catalog in display order.
func AllAppTypes() []AppType {
	return []AppType{
		AppTypeGoogleMeetAndCalendar,
		AppTypeZoomMeeting,
		AppTypeOutlookCalendar,
	}
}

func IsValidAppType(appType AppType) bool {
	_, ok := appTypeProvider[appType]
	return ok
}

func ProviderFor(appType AppType) Provider {
	return appTypeProvider[appType]
}

func TitleFor(appType AppType) string {
	return appTypeTitle[appType]
}

func CategoryFor(appType AppType) Category {
	return appTypeCategory[appType]
}
