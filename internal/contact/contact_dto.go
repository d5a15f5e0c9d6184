package contact

type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Message string `json:"message" binding:"required,max=5000"`
}

type ContactResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
