package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/client"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
	"golang.org/x/sync/errgroup"
)

type EmployeeController struct {
	API *client.Client
}

// GetEmployees lists the roster with each worker's billing stats. Stats are
// best effort: without a dashboard everyone shows zero bills.
func (ec *EmployeeController) GetEmployees(c *gin.Context) {
	var (
		employees []models.Employee
		dashboard *models.Dashboard
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		employees, err = ec.API.Employees(ctx)
		return err
	})
	g.Go(func() error {
		d, err := ec.API.Dashboard(ctx)
		if err != nil && ctx.Err() == nil && !errors.Is(err, client.ErrUnauthorized) {
			utils.ErrorLogger.Printf("Employee stats unavailable: %v", err)
			return nil
		}
		dashboard = d
		return err
	})
	if err := g.Wait(); err != nil {
		respondServiceError(c, err)
		return
	}

	var perf []models.EmployeePerformance
	if dashboard != nil {
		perf = dashboard.EmployeePerformance
	}
	utils.RespondJSON(c, http.StatusOK, "List of employees", services.Roster(employees, perf))
}

func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var form models.EmployeeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	employee, err := ec.API.CreateEmployee(c.Request.Context(), form)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Employee added: %s (role=%s)", employee.Email, employee.Role)
	utils.RespondJSON(c, http.StatusCreated, "Employee added", employee)
}

func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	if err := ec.API.DeleteEmployee(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee removed", nil)
}
