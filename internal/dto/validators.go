package dto

import (
	"github.com/SscSPs/chatledger/internal/core/domain"
	"github.com/SscSPs/chatledger/internal/utils"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the chataddress and langcode tags used by the
// request DTOs.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("chataddress", func(fl validator.FieldLevel) bool {
		_, err := utils.NormalizeAddress(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("langcode", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseLanguage(fl.Field().String())
		return err == nil
	})
}
