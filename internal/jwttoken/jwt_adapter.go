package jwttoken

import (
	"wastebot/internal/platform/middleware"
)

// ServiceAdapter bridges the token service to the middleware's validator
// interface so the middleware package stays free of JWT specifics.
type ServiceAdapter struct {
	service *Service
}

func NewServiceAdapter(service *Service) *ServiceAdapter {
	return &ServiceAdapter{service: service}
}

func (a *ServiceAdapter) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	claims, err := a.service.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.TokenClaims{Subject: claims.Subject}, nil
}
