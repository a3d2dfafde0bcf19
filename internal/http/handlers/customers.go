package handlers

import (
	"net/http"
	"strconv"

	intconfig "shop-backend/internal/config"
	"shop-backend/internal/http/middleware"
	"shop-backend/internal/listing"
	"shop-backend/internal/repositories"
	"shop-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func customerService(c *gin.Context) services.CustomerService {
	return services.CustomerService{
		Repo:      repositories.CustomerRepository{DB: intconfig.DB},
		Orders:    repositories.OrderRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/customers?page=2&limit=5&sortField=totalAmount&sortOrder=desc&registrationDateFrom=2023-01-01&totalAmountFrom=100&orderCountTo=10&search=ann
func GetCustomers(c *gin.Context) {
	q, err := listing.ParseCustomerListQuery(c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	res, err := customerService(c).List(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": res.Items,
		"pagination": gin.H{
			"totalUsers":  res.Total,
			"totalPages":  res.TotalPages,
			"currentPage": res.CurrentPage,
			"pageSize":    res.PageSize,
		},
	})
}

// GET /api/customers/:id
func GetCustomerByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid customer id", nil)
		return
	}

	customer, err := customerService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

type updateCustomerRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	DeliveryAddress *string `json:"deliveryAddress"`
}

// PATCH /api/customers/:id
// Only allow-listed fields make it into the UPDATE; everything else in the
// payload is ignored.
func UpdateCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid customer id", nil)
		return
	}

	var req updateCustomerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	fields := map[string]string{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.DeliveryAddress != nil {
		fields["deliveryAddress"] = *req.DeliveryAddress
	}

	customer, err := customerService(c).Update(c.Request.Context(), id, fields)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DELETE /api/customers/:id
func DeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid customer id", nil)
		return
	}

	customer, err := customerService(c).Delete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
