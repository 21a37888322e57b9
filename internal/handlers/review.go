package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/autocarepro/autocare-server/internal/auth"
	"github.com/autocarepro/autocare-server/internal/db"
	"github.com/autocarepro/autocare-server/internal/middleware"
	"github.com/autocarepro/autocare-server/internal/models"
	"github.com/autocarepro/autocare-server/internal/validation"
)

// ReviewHandler handles review CRUD requests.
type ReviewHandler struct {
	reviews db.ReviewCollection
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews db.ReviewCollection) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// canModifyReview limits edits and deletes to the review's author.
func canModifyReview(claims *auth.Claims, review *models.Review) bool {
	if claims.Role == models.RoleAdmin {
		return true
	}
	return review.CustomerID == claims.UserID
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if claims.Role == models.RoleCustomer || review.CustomerID == "" {
		review.CustomerID = claims.UserID
	}

	if result := validation.ValidateReview(&review); !result.Valid {
		http.Error(w, result.Message, http.StatusBadRequest)
		return
	}

	if err := h.reviews.InsertReview(r.Context(), &review); err != nil {
		persistenceError(w, err, "review")
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// Get handles GET /api/reviews/{id}.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	review, err := h.reviews.FindReviewByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		persistenceError(w, err, "review")
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// List handles GET /api/reviews. Customers see reviews they wrote,
// providers reviews written about them; ?provider_id= narrows for admins.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	filter := bson.M{}
	switch claims.Role {
	case models.RoleCustomer:
		filter["customer_id"] = claims.UserID
	case models.RoleProvider:
		filter["provider_id"] = claims.UserID
	default:
		if provider := r.URL.Query().Get("provider_id"); provider != "" {
			filter["provider_id"] = provider
		}
	}

	reviews, err := h.reviews.FindReviews(r.Context(), filter)
	if err != nil {
		persistenceError(w, err, "review")
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// Update handles PUT /api/reviews/{id}.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	existing, err := h.reviews.FindReviewByID(r.Context(), id)
	if err != nil {
		persistenceError(w, err, "review")
		return
	}
	if !canModifyReview(claims, existing) {
		http.Error(w, "Insufficient permissions", http.StatusForbidden)
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	review.ID = existing.ID
	review.CustomerID = existing.CustomerID
	review.ProviderID = existing.ProviderID
	review.Date = existing.Date
	review.CreatedAt = existing.CreatedAt

	if result := validation.ValidateReview(&review); !result.Valid {
		http.Error(w, result.Message, http.StatusBadRequest)
		return
	}

	if err := h.reviews.UpdateReview(r.Context(), id, review); err != nil {
		persistenceError(w, err, "review")
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// Delete handles DELETE /api/reviews/{id}?confirm=true.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}
	if !requireConfirmation(w, r) {
		return
	}

	id := mux.Vars(r)["id"]
	existing, err := h.reviews.FindReviewByID(r.Context(), id)
	if err != nil {
		persistenceError(w, err, "review")
		return
	}
	if !canModifyReview(claims, existing) {
		http.Error(w, "Insufficient permissions", http.StatusForbidden)
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), id); err != nil {
		persistenceError(w, err, "review")
		return
	}

	writeMessage(w, http.StatusOK, "Review deleted")
}
