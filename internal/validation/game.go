package validation

import (
	"strings"

	"github.com/fortunesim/fortune-simulator-backend/internal/api/request"
	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

func ValidateNewGame(req request.NewGame) error {
	errors := make(map[string]string)

	if len(req.Name) > 50 {
		errors["name"] = "name must be 50 characters or less"
	}
	if req.Age != 0 && (req.Age < 18 || req.Age > 60) {
		errors["age"] = "age must be between 18 and 60"
	}
	if req.Wealth < 0 {
		errors["wealth"] = "wealth cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidatePerformAction(req request.PerformAction) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.ActionID) == "" {
		errors["actionId"] = "actionId is required"
	}
	if req.Params.Amount < 0 {
		errors["params.amount"] = "amount cannot be negative"
	}
	if req.Params.Price < 0 {
		errors["params.price"] = "price cannot be negative"
	}
	if req.Params.DownPayment < 0 {
		errors["params.downPayment"] = "downPayment cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateBuyHolding(req request.BuyHolding) error {
	errors := make(map[string]string)

	if !model.ValidAssetType(req.Type) {
		errors["type"] = "type must be one of stock, fund, crypto, business"
	}
	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}
	if req.Price < 0 {
		errors["price"] = "price cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateSellHolding(req request.SellHolding) error {
	errors := make(map[string]string)

	if req.Ratio <= 0 {
		errors["ratio"] = "ratio must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateAddHolding(req request.AddHolding) error {
	errors := make(map[string]string)

	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateTakeLoan(req request.TakeLoan) error {
	errors := make(map[string]string)

	if model.LoanTypeByID(req.Type) == nil {
		errors["type"] = "type must be one of mortgage, car_loan, consumer"
	}
	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}
	if req.Years <= 0 {
		errors["years"] = "years must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateStudy(req request.Study) error {
	errors := make(map[string]string)

	if !model.KnownSkillField(req.Field) {
		errors["field"] = "field must be a known skill field"
	}
	if req.Hours <= 0 {
		errors["hours"] = "hours must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateImport(req request.Import) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Token) == "" {
		errors["token"] = "token is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
