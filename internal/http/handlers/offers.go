package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tripmarket/internal/domain/models"
	"tripmarket/internal/http/middleware"
	"tripmarket/internal/offers"
	"tripmarket/internal/services"
	"tripmarket/internal/utils"

	"github.com/gin-gonic/gin"
)

func lifecycleService(c *gin.Context) services.LifecycleService {
	return services.LifecycleService{RequestID: middleware.GetRequestID(c)}
}

func counterService(c *gin.Context) services.CounterOfferService {
	return services.CounterOfferService{RequestID: middleware.GetRequestID(c)}
}

func savedService(c *gin.Context) services.SavedOfferService {
	return services.SavedOfferService{RequestID: middleware.GetRequestID(c)}
}

func queryService() services.QueryService {
	return services.QueryService{}
}

// GET /api/offers/:id
func GetOffer(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	detail, err := queryService().GetOffer(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": detail})
}

// POST /api/offers/:id/accept
func AcceptOffer(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)
	if userID <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	offer, err := lifecycleService(c).AcceptOffer(c.Request.Context(), id, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "offer accepted", "offer": offer})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// POST /api/offers/:id/reject
func RejectOffer(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req rejectRequest
	if c.Request.ContentLength > 0 && !BindJSONOrError(c, &req) {
		return
	}

	offer, err := lifecycleService(c).RejectOffer(c.Request.Context(), id, strings.TrimSpace(req.Reason))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "offer rejected", "offer": offer})
}

// POST /api/offers/:id/counter
func SubmitCounteroffer(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req models.CounterOfferInput
	if !BindJSONOrError(c, &req) {
		return
	}

	counter, err := counterService(c).SubmitCounteroffer(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "counteroffer submitted", "counter_offer": counter})
}

// GET /api/offers/:id/counters
func ListCounterOffers(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	rounds, err := counterService(c).ListRounds(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counter_offers": rounds})
}

// POST /api/offers/:id/save
func SaveOffer(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)
	if userID <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	saved, err := savedService(c).SaveOfferForLater(c.Request.Context(), id, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "offer saved", "saved_offer": saved})
}

type shareRequest struct {
	GroupID int64  `json:"group_id"`
	Message string `json:"message"`
}

// POST /api/offers/:id/share
func ShareOffer(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req shareRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	share, err := savedService(c).ShareOfferWithGroup(c.Request.Context(), id, req.GroupID, strings.TrimSpace(req.Message))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "offer shared", "share": share})
}

type filterRequest struct {
	TripRequestID int64    `json:"trip_request_id"`
	Status        string   `json:"status"`
	MinPrice      *int64   `json:"min_price"`
	MaxPrice      *int64   `json:"max_price"`
	MinRating     *float64 `json:"min_rating"`
	CreatedFrom   string   `json:"created_from"`
	CreatedTo     string   `json:"created_to"`
	SortBy        string   `json:"sort_by"`
	SortOrder     string   `json:"sort_order"`
}

// POST /api/offers/filter
func FilterOffers(c *gin.Context) {
	var req filterRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.TripRequestID <= 0 {
		RespondError(c, http.StatusBadRequest, "trip_request_id is required", nil)
		return
	}

	f := offers.Filters{
		Status:    strings.TrimSpace(req.Status),
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		MinRating: req.MinRating,
	}
	if req.CreatedFrom != "" {
		t, err := utils.ParseDate(req.CreatedFrom)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid created_from", err)
			return
		}
		f.CreatedFrom = &t
	}
	if req.CreatedTo != "" {
		t, err := utils.ParseDate(req.CreatedTo)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid created_to", err)
			return
		}
		f.CreatedTo = &t
	}

	views, err := queryService().FilterOffers(c.Request.Context(), req.TripRequestID, f, req.SortBy, req.SortOrder)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": views, "count": len(views)})
}

type compareRequest struct {
	OfferIDs       []int64 `json:"offer_ids"`
	ExcludeUnrated bool    `json:"exclude_unrated"`
}

// POST /api/offers/compare
func CompareOffers(c *gin.Context) {
	var req compareRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	cmp, views, err := queryService().CompareSelected(c.Request.Context(), req.OfferIDs, req.ExcludeUnrated)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comparison": cmp, "offers": views})
}

// GET /api/offers/compare/pdf?ids=1,2,3
func ComparisonPDF(c *gin.Context) {
	raw := strings.Split(c.Query("ids"), ",")
	var ids []int64
	for _, part := range raw {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, http.StatusBadRequest, "invalid ids parameter", err)
			return
		}
		ids = append(ids, id)
	}

	svc := services.ReportsService{Query: queryService(), RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.ComparisonPDF(c.Request.Context(), ids)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
