package utils

// Every endpoint answers with the same envelope:
//
//	{ "success": bool, "data": ..., "error": "...", "message": "..." }
//
// Success responses carry data and/or a message; failures carry an error
// string. Handlers may merge extra top-level fields (count, source,
// pagination) into success envelopes via the extras map.

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// OK writes a 200 success envelope with the given data.
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

// OKWith writes a success envelope extended with extra top-level fields
// (e.g. count, total, source). Reserved envelope keys in extras are
// ignored rather than allowed to clobber the contract.
func OKWith(c echo.Context, data any, extras echo.Map) error {
	body := echo.Map{"success": true, "data": data}
	for k, v := range extras {
		if k == "success" || k == "data" || k == "error" {
			continue
		}
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

// Created writes a 201 success envelope with the given data.
func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": data})
}

// Message writes a success envelope that carries only a human-readable
// message (e.g. after registration or deletion).
func Message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": true, "message": msg})
}

// Fail writes a failure envelope with the given status and error message.
func Fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}
