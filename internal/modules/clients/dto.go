package clients

type ClientRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	LicenseNumber string `json:"license_number"`
	IDDocNumber   string `json:"id_doc_number"`
	Status        string `json:"status" binding:"omitempty,oneof=normal vip risky blocked blacklist"`
	Notes         string `json:"notes"`
}
