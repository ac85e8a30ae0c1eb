package handler

import (
	"studyzen/backend/internal/chathub"
	"studyzen/backend/internal/report"
	"studyzen/backend/internal/storage"
)

// Handler wires the HTTP surface to the chat hub and services.
type Handler struct {
	Hub       *chathub.Hub
	Reports   *report.Service
	Storage   storage.Storage
	jwtSecret []byte
}

func NewHandler(hub *chathub.Hub, reports *report.Service, s storage.Storage, jwtSecret string) *Handler {
	return &Handler{
		Hub:       hub,
		Reports:   reports,
		Storage:   s,
		jwtSecret: []byte(jwtSecret),
	}
}
