package vendoroffers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/quickbite/oms/internal/service/models/offer"
	"github.com/quickbite/oms/internal/service/services/vendorsvc"
	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/auth"
)

type service interface {
	AddOffer(ctx context.Context, vendorID int64, in vendorsvc.OfferInput) (*offer.Offer, error)
	EditOffer(ctx context.Context, vendorID, offerID int64, in vendorsvc.OfferInput) (*offer.Offer, error)
}

// offerRequest is the discount rule a vendor maintains.
type offerRequest struct {
	PromoType        string    `json:"promoType"        validate:"required,oneof=USER BANK CARD ALL"`
	Title            string    `json:"title"            validate:"required"`
	Description      string    `json:"description"`
	MinValueCents    int64     `json:"minValueCents"    validate:"gte=0"`
	OfferAmountCents int64     `json:"offerAmountCents" validate:"required,gt=0"`
	PromoCode        string    `json:"promoCode"`
	Pincode          string    `json:"pincode"          validate:"required"`
	IsActive         bool      `json:"isActive"`
	StartValidity    time.Time `json:"startValidity"`
	EndValidity      time.Time `json:"endValidity"`
}

// Validate validates the offer request.
func (r *offerRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *offerRequest) toInput() vendorsvc.OfferInput {
	return vendorsvc.OfferInput{
		PromoType:        offer.PromoType(r.PromoType),
		Title:            r.Title,
		Description:      r.Description,
		MinValueCents:    r.MinValueCents,
		OfferAmountCents: r.OfferAmountCents,
		PromoCode:        r.PromoCode,
		Pincode:          r.Pincode,
		IsActive:         r.IsActive,
		StartValidity:    r.StartValidity,
		EndValidity:      r.EndValidity,
	}
}

func decodeOffer(w http.ResponseWriter, r *http.Request) (*offerRequest, bool) {
	req := &offerRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for offer", "error", err)

		return nil, false
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for offer", "error", err)

		return nil, false
	}

	return req, true
}

// AddOffer handles the vendor request to create a discount offer.
func AddOffer(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	req, ok := decodeOffer(w, r)
	if !ok {
		return
	}

	o, err := service.AddOffer(r.Context(), claims.UserID, req.toInput())
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusCreated, o)
}

// EditOffer handles the vendor request to overwrite one of their offers.
func EditOffer(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	offerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid offer id", http.StatusBadRequest)

		return
	}

	req, ok := decodeOffer(w, r)
	if !ok {
		return
	}

	o, err := service.EditOffer(r.Context(), claims.UserID, offerID, req.toInput())
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, o)
}
