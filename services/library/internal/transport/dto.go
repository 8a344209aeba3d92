package transport

type BorrowRequest struct {
	BookID uint `json:"bookId"`
}

type ReturnRequest struct {
	BookID uint `json:"bookId"`
}

type CreateBookRequest struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}

type UpdateBookRequest struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}

type BorrowResponse struct {
	Message        string `json:"message"`
	RemainingStock int    `json:"remaining_stock"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
