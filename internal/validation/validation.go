// validation.go
//
// A classifieds marketplace data service built on the jam-build data service stack
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-classifieds.
// jam-build-classifieds is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-classifieds is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-classifieds.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package validation checks mutation payloads and reports every violation in field order.
// Callers decide how many to show; the HTTP layer surfaces the first.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/localnerve/jam-build-classifieds/internal/types"
)

// Violation is a single failed rule
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Violations is an ordered list of failed rules
type Violations []Violation

func (v Violations) Error() string {
	if len(v) == 0 {
		return "no violations"
	}
	return v[0].Message
}

// First returns the first violation, or nil
func (v Violations) First() *Violation {
	if len(v) == 0 {
		return nil
	}
	return &v[0]
}

// AppError converts the list to a BAD_REQUEST carrying the first message
func (v Violations) AppError() *types.AppError {
	if len(v) == 0 {
		return nil
	}
	return types.BadRequest(v[0].Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "hasupper", containsRune(unicode.IsUpper))
	mustRegister(v, "hasdigit", containsRune(unicode.IsDigit))
	mustRegister(v, "hasspecial", containsRune(func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
	}))

	v.RegisterStructValidation(listingFamilies, ListingInput{})
	v.RegisterStructValidation(messageContact, MessageInput{})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

func containsRune(match func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), match) >= 0
	}
}

// Struct validates a payload and returns every violation, nil when valid
func Struct(payload any) Violations {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return Violations{{Rule: "invalid", Message: "Invalid request body"}}
	}

	out := make(Violations, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, Violation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	label := labelFor(fe.Field())
	param := fe.Param()
	text := fe.Kind() == reflect.String || fe.Kind() == reflect.Slice

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", label, param)
		}
		if text {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s items", label, param)
		}
		if text {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "email":
		return "Invalid email address"
	case "url":
		return label + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "eqfield":
		return "Passwords do not match"
	case "hasupper":
		return label + " must contain at least one uppercase letter"
	case "hasdigit":
		return label + " must contain at least one number"
	case "hasspecial":
		return label + " must contain at least one special character"
	case "real_estate_only":
		return label + " is only allowed for REAL_ESTATE listings"
	case "goods_only":
		return label + " is not allowed for REAL_ESTATE listings"
	case "phone_or_email":
		return "Either phone or email is required"
	}
	return label + " is invalid"
}

func labelFor(field string) string {
	if field == "" {
		return "Value"
	}
	r := []rune(field)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
