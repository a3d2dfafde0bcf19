package handlers

import (
	"net/http"
	"strconv"

	intconfig "shop-backend/internal/config"
	"shop-backend/internal/domain"
	"shop-backend/internal/http/middleware"
	"shop-backend/internal/listing"
	"shop-backend/internal/repositories"
	"shop-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func orderService(c *gin.Context) services.OrderService {
	return services.OrderService{
		Repo:      repositories.OrderRepository{DB: intconfig.DB},
		Products:  repositories.ProductRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/orders?page=2&limit=5&sortField=totalAmount&sortOrder=desc&orderDateFrom=2024-07-01&orderDateTo=2024-08-01&status=delivery&totalAmountFrom=100&search=%2B1
func GetOrders(c *gin.Context) {
	q, err := listing.ParseOrderListQuery(c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	res, err := orderService(c).List(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": res.Items,
		"pagination": gin.H{
			"totalOrders": res.Total,
			"totalPages":  res.TotalPages,
			"currentPage": res.CurrentPage,
			"pageSize":    res.PageSize,
		},
	})
}

// GET /api/orders/me
func GetMyOrders(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authorization required", nil)
		return
	}

	q, err := listing.ParseMyOrdersQuery(c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	res, err := orderService(c).ListForCustomer(c.Request.Context(), int64(user.UserID), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": res.Items,
		"pagination": gin.H{
			"totalOrders": res.Total,
			"totalPages":  res.TotalPages,
			"currentPage": res.CurrentPage,
			"pageSize":    res.PageSize,
		},
	})
}

func parseOrderNumber(c *gin.Context) (int64, bool) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil || number <= 0 {
		RespondError(c, http.StatusBadRequest, "Invalid order number", nil)
		return 0, false
	}
	return number, true
}

// GET /api/orders/:number
func GetOrderByNumber(c *gin.Context) {
	number, ok := parseOrderNumber(c)
	if !ok {
		return
	}
	order, err := orderService(c).GetByNumber(c.Request.Context(), number)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /api/orders/me/:number
func GetMyOrderByNumber(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authorization required", nil)
		return
	}
	number, ok := parseOrderNumber(c)
	if !ok {
		return
	}
	order, err := orderService(c).GetForCustomer(c.Request.Context(), int64(user.UserID), number)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// POST /api/orders
func CreateOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authorization required", nil)
		return
	}

	var req services.CreateOrderRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	order, err := orderService(c).Create(c.Request.Context(), int64(user.UserID), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

// PATCH /api/orders/:number
func UpdateOrder(c *gin.Context) {
	number, ok := parseOrderNumber(c)
	if !ok {
		return
	}

	var req updateOrderRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	order, err := orderService(c).UpdateStatus(c.Request.Context(), number, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DELETE /api/orders/:id
func DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid order id", nil)
		return
	}

	order, err := orderService(c).Delete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /api/orders/me/:number/invoice
func OrderInvoice(c *gin.Context) {
	number, ok := parseOrderNumber(c)
	if !ok {
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authorization required", nil)
		return
	}
	if user.Role != domain.RoleAdmin {
		// Ownership check. A foreign order number reads as not found.
		if _, err := orderService(c).GetForCustomer(c.Request.Context(), int64(user.UserID), number); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	svc := services.DocsService{
		Orders:    repositories.OrderRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateInvoice(c.Request.Context(), number)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
