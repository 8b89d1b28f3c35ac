package handlers

import (
	"github.com/fatflowers/tryonce/internal/app/service/catalog"
	"github.com/fatflowers/tryonce/internal/app/service/sales"
	"github.com/fatflowers/tryonce/internal/models"
	"github.com/fatflowers/tryonce/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespAuth wraps AuthResponse in the standard envelope.
type RespAuth struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    AuthResponse             `json:"data"`
}

type RespProductList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    catalog.ListResponse     `json:"data"`
}

type RespProduct struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Product           `json:"data"`
}

type RespStrings struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []string                 `json:"data"`
}

type RespOrder struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Order             `json:"data"`
}

type RespOrderList struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []models.Order           `json:"data"`
}

// RespSalesSummary wraps sales.SummaryResponse in the standard envelope.
type RespSalesSummary struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    sales.SummaryResponse    `json:"data"`
}
