package client

import (
	"context"
	"net/http"

	"github.com/yeremiapane/restaurant-pos/models"
)

func (c *Client) Employees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := c.get(ctx, "/api/employees", &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) CreateEmployee(ctx context.Context, form models.EmployeeForm) (*models.Employee, error) {
	if err := models.Validate(form); err != nil {
		return nil, err
	}
	var employee models.Employee
	if err := c.send(ctx, http.MethodPost, "/api/employees", form, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, employeeID string) error {
	return c.send(ctx, http.MethodDelete, "/api/employees/"+escape(employeeID), nil, nil)
}
