package contact

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/electromaison/storefront-api/mail"
)

type ContactHandler struct {
	mailer mail.Mailer
}

func NewContactHandler(m mail.Mailer) *ContactHandler {
	return &ContactHandler{mailer: m}
}

// HandleSend validates the form and dispatches it to the store's fixed
// recipient. Phone is optional; everything else is required.
func (h *ContactHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond(w, http.StatusBadRequest, false, "Invalid JSON body")
		return
	}
	if input.Name == "" || input.Email == "" || input.Message == "" {
		respond(w, http.StatusBadRequest, false, "Missing required fields")
		return
	}

	err := h.mailer.SendContact(mail.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Message: input.Message,
	})
	if err != nil {
		log.Printf("error sending contact email: %v", err)
		respond(w, http.StatusInternalServerError, false, "Failed to send email")
		return
	}

	respond(w, http.StatusOK, true, "")
}

func respond(w http.ResponseWriter, code int, success bool, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	body := map[string]interface{}{"success": success}
	if errMsg != "" {
		body["error"] = errMsg
	}
	json.NewEncoder(w).Encode(body)
}
