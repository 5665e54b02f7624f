package http

import (
	"net/http"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/service"
)

type InquiryHandler struct {
	inquiries service.InquiryService
}

func NewInquiryHandler(inquiries service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

type createInquiryRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := userFrom(r.Context())

	var req createInquiryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Subject == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "subject and message are required")
		return
	}

	inquiry, err := h.inquiries.CreateInquiry(r.Context(), actor.ID, req.Subject, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inquiry)
}

func (h *InquiryHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, _ := userFrom(r.Context())
	inquiries, err := h.inquiries.ListMyInquiries(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiries)
}

func (h *InquiryHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.inquiries.ListAllInquiries(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiries)
}

type replyInquiryRequest struct {
	Reply  string `json:"reply"`
	Status string `json:"status"`
}

func (h *InquiryHandler) Reply(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid inquiry id")
		return
	}

	var req replyInquiryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Reply == "" {
		writeError(w, http.StatusBadRequest, "reply is required")
		return
	}

	inquiry, err := h.inquiries.ReplyInquiry(r.Context(), id, req.Reply, domain.InquiryStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiry)
}
