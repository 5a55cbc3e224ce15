package server

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type MnemonicRequest struct {
	Mnemonic   string `json:"mnemonic"`
	Passphrase string `json:"passphrase"`
}

type CreateTokenRequest struct {
	MintAuthority   string `json:"mintAuthority"`
	Mint            string `json:"mint"`
	Decimals        uint8  `json:"decimals"`
	FreezeAuthority string `json:"freezeAuthority"`
}

type MintTokenRequest struct {
	Mint        string `json:"mint"`
	Destination string `json:"destination"`
	Authority   string `json:"authority"`
	Amount      uint64 `json:"amount"`
}

type AssociatedAccountRequest struct {
	Owner string `json:"owner"`
	Mint  string `json:"mint"`
}

type SignMessageRequest struct {
	Message string `json:"message"`
	Secret  string `json:"secret"`
}

type VerifyMessageRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Pubkey    string `json:"pubkey"`
}

type SendSolRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Lamports uint64 `json:"lamports"`
}

type SendTokenRequest struct {
	Destination string `json:"destination"`
	Mint        string `json:"mint"`
	Owner       string `json:"owner"`
	Amount      uint64 `json:"amount"`
}
