package api

// Response statuses mirror the billing RPC contract.
const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
)

type Response struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

type EmissionRequest struct {
	Amount int64 `json:"amount"`
}

type MoveCoinsRequest struct {
	SrcUser string `json:"srcUser"`
	DstUser string `json:"dstUser"`
	Amount  int64  `json:"amount"`
}

type UserProfile struct {
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

type CoinResponse struct {
	ID      int64  `json:"id"`
	History string `json:"history"`
}
