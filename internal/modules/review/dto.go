package review

type SubmitReviewRequest struct {
	BookingID int64  `json:"booking_id" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment,omitempty"`
}

type HostResponseRequest struct {
	Response string `json:"response" validate:"required"`
}
