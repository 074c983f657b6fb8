package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	goerrors "errors"
	"fmt"
	"net/http"
	"time"

	"meetning-api/core/config"
	"meetning-api/core/errors"
	"meetning-api/core/logger"

	"github.com/gosimple/slug"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const googleCalendarID = "primary"

// GoogleProvider implements CalendarProvider for the Google Meet & Calendar
// bundle: Google OAuth for tokens, Calendar API v3 for events, hangoutsMeet
// for conferencing.
type GoogleProvider struct {
	oauth *oauth2.Config
}

func NewGoogleProvider(cfg config.GoogleAPIConfig) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes: []string{
				calendar.CalendarScope,
				calendar.CalendarEventsScope,
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (p *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*TokenBundle, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		logger.Error("GoogleProvider:ExchangeCode:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrRemoteProvider, "failed to exchange authorization code", err)
	}

	scope, _ := tok.Extra("scope").(string)
	return &TokenBundle{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiryDate:   tokenExpiry(tok),
		Scope:        scope,
		TokenType:    tok.TokenType,
	}, nil
}

func (p *GoogleProvider) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenBundle, error) {
	tokenSource := p.oauth.TokenSource(ctx, &oauth2.Token{
		RefreshToken: refreshToken,
	})

	tok, err := tokenSource.Token()
	if err != nil {
		logger.Error("GoogleProvider:RefreshAccessToken:Error", "error", err)
		return nil, err
	}

	return &TokenBundle{
		AccessToken: tok.AccessToken,
		ExpiryDate:  tokenExpiry(tok),
	}, nil
}

func (p *GoogleProvider) CreateEvent(ctx context.Context, accessToken string, spec *EventSpec) (*CreatedEvent, error) {
	svc, err := p.calendarService(ctx, accessToken)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrRemoteProvider, "failed to create calendar client", err)
	}

	event := &calendar.Event{
		Summary:     spec.Title,
		Description: spec.Description,
		Start: &calendar.EventDateTime{
			DateTime: spec.StartTime.Format(time.RFC3339),
			TimeZone: spec.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: spec.EndTime.Format(time.RFC3339),
			TimeZone: spec.Timezone,
		},
		Attendees: eventAttendees(spec.Attendees),
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: ConferenceRequestID(spec.EventID),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
	}

	created, err := svc.Events.Insert(googleCalendarID, event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		logger.Error("GoogleProvider:CreateEvent:Error", "error", err, "event_id", spec.EventID)
		return nil, errors.NewAppError(errors.ErrRemoteProvider, remoteErrorMessage(err), err)
	}

	link := ExtractMeetLink(created)
	if link == "" {
		return nil, errors.NewAppError(errors.ErrNoMeetLink, "provider returned no conference link", nil)
	}

	return &CreatedEvent{
		RemoteEventID:  created.Id,
		ConferenceLink: link,
	}, nil
}

func (p *GoogleProvider) DeleteEvent(ctx context.Context, accessToken string, remoteEventID string) error {
	svc, err := p.calendarService(ctx, accessToken)
	if err != nil {
		return errors.NewAppError(errors.ErrRemoteProvider, "failed to create calendar client", err)
	}

	err = svc.Events.Delete(googleCalendarID, remoteEventID).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if goerrors.As(err, &gerr) && (gerr.Code == http.StatusNotFound || gerr.Code == http.StatusGone) {
			return ErrEventNotFound
		}
		logger.Error("GoogleProvider:DeleteEvent:Error", "error", err, "remote_event_id", remoteEventID)
		return errors.NewAppError(errors.ErrRemoteProvider, remoteErrorMessage(err), err)
	}
	return nil
}

func (p *GoogleProvider) calendarService(ctx context.Context, accessToken string) (*calendar.Service, error) {
	return calendar.NewService(ctx, option.WithTokenSource(
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}),
	))
}

// ConferenceRequestID derives the conference-creation idempotency token from
// the caller's logical event id alone. Retried creates for the same meeting
// reuse the same token, so provider-side retries never spawn a second
// conference. The slug is lossy ("My Event" and "my-event" sanitize alike),
// so a digest of the raw id keeps distinct event ids on distinct tokens.
func ConferenceRequestID(eventID string) string {
	sum := sha256.Sum256([]byte(eventID))
	return fmt.Sprintf("meeting-%s-%s", slug.Make(eventID), hex.EncodeToString(sum[:4]))
}

// ExtractMeetLink prefers the direct join link, then falls back to the first
// conference entry point carrying a URI.
func ExtractMeetLink(event *calendar.Event) string {
	if event.HangoutLink != "" {
		return event.HangoutLink
	}
	if event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep != nil && ep.Uri != "" {
				return ep.Uri
			}
		}
	}
	return ""
}

func eventAttendees(emails []string) []*calendar.EventAttendee {
	if len(emails) == 0 {
		return nil
	}
	attendees := make([]*calendar.EventAttendee, len(emails))
	for i, email := range emails {
		attendees[i] = &calendar.EventAttendee{Email: email}
	}
	return attendees
}

func tokenExpiry(tok *oauth2.Token) *time.Time {
	if tok.Expiry.IsZero() {
		return nil
	}
	expiry := tok.Expiry
	return &expiry
}

func remoteErrorMessage(err error) string {
	var gerr *googleapi.Error
	if goerrors.As(err, &gerr) {
		if gerr.Message != "" {
			return gerr.Message
		}
		if gerr.Body != "" {
			return gerr.Body
		}
	}
	return err.Error()
}
