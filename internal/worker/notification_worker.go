package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/events"
	"github.com/spec-kit/campus-community/internal/mail"
	"github.com/spec-kit/campus-community/internal/service"
)

// NotificationWorker turns domain events into in-app notifications and mail.
// Every handler is best-effort: failures are returned to the dispatcher for
// logging and never retried.
type NotificationWorker struct {
	notifications *service.NotificationService
	mailer        mail.Mailer
	logger        *zap.Logger
}

// StartNotificationWorker wires the worker's handlers into the dispatcher.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService, mailer mail.Mailer, logger *zap.Logger) *NotificationWorker {
	w := &NotificationWorker{
		notifications: notifications,
		mailer:        mailer,
		logger:        logger,
	}
	dispatcher.Subscribe(events.EventUserVerified, w.handleUserVerified)
	dispatcher.Subscribe(events.EventContactApproved, w.handleContactApproved)
	dispatcher.Subscribe(events.EventListingInterest, w.handleListingInterest)
	dispatcher.Subscribe(events.EventPasswordChanged, w.handlePasswordChanged)
	dispatcher.Subscribe(events.EventLostFoundPosted, w.handleLostFoundPosted)
	return w
}

func (w *NotificationWorker) handleUserVerified(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserVerifiedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type for %s", event.Type)
	}

	if err := w.notifications.Notify(ctx, payload.UserID,
		domain.NotificationVerificationApproved,
		"Account Verified",
		"Congratulations! Your account has been verified. You can now create listings and interact with the community.",
		nil, nil); err != nil {
		w.logger.Error("verification notification failed",
			zap.Int64("user_id", payload.UserID), zap.Error(err))
	}

	subject, body := mail.ApprovalBody(payload.Name, "verified")
	w.send(payload.Email, subject, body)
	return nil
}

func (w *NotificationWorker) handleContactApproved(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactApprovedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type for %s", event.Type)
	}

	message := "Your contact information has been approved. Buyers can now see your contact details on your listings."
	if err := w.notifications.Notify(ctx, payload.UserID,
		domain.NotificationContactApproved,
		"Contact Information Approved",
		message,
		nil, map[string]any{"listingsCovered": payload.ListingsCovered}); err != nil {
		w.logger.Error("contact approval notification failed",
			zap.Int64("user_id", payload.UserID), zap.Error(err))
	}

	subject, body := mail.ApprovalBody(payload.Name, "contact approved")
	w.send(payload.Email, subject, body)
	return nil
}

// handleListingInterest notifies the seller in-app for every interest. Mail is
// sent only when the seller has a personal email on file and their contact is
// not yet publicly visible, so they learn they must ask the administrator.
func (w *NotificationWorker) handleListingInterest(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ListingInterestPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type for %s", event.Type)
	}

	if err := w.notifications.Notify(ctx, payload.SellerID,
		domain.NotificationListingInterest,
		"New Interest in Your Listing",
		fmt.Sprintf("%s is interested in your listing \"%s\"", payload.BuyerName, payload.ListingTitle),
		domain.ListingRef(payload.ListingID),
		map[string]any{
			"buyerId":      payload.BuyerID,
			"buyerName":    payload.BuyerName,
			"listingTitle": payload.ListingTitle,
		}); err != nil {
		w.logger.Error("interest notification failed",
			zap.Int64("seller_id", payload.SellerID), zap.Error(err))
	}

	if payload.SellerPersonalEmail != nil && !payload.SellerContactShown {
		subject, body := mail.InterestBody(payload.SellerName, payload.BuyerName, payload.ListingTitle, payload.ListingPrice)
		w.send(*payload.SellerPersonalEmail, subject, body)
	}
	return nil
}

func (w *NotificationWorker) handlePasswordChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type for %s", event.Type)
	}
	subject, body := mail.PasswordChangedBody(payload.Name, payload.ChangedAt.Format(time.RFC1123))
	w.send(payload.Email, subject, body)
	return nil
}

// handleLostFoundPosted broadcasts to every verified active user except the
// poster.
func (w *NotificationWorker) handleLostFoundPosted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.LostFoundPostedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type for %s", event.Type)
	}

	title := "Lost Item Reported"
	if payload.Kind == string(domain.LostFoundKindFound) {
		title = "Found Item Reported"
	}
	return w.notifications.NotifyAllEligible(ctx, payload.PosterID,
		domain.NotificationLostFound,
		title,
		fmt.Sprintf("%s posted: %s", payload.PosterName, payload.Title),
		domain.LostFoundRef(payload.PostID),
		map[string]any{"kind": payload.Kind})
}

func (w *NotificationWorker) send(to, subject, body string) {
	if to == "" {
		return
	}
	if err := w.mailer.Send(to, subject, body); err != nil {
		w.logger.Error("mail send failed",
			zap.String("to", to), zap.String("subject", subject), zap.Error(err))
	}
}
