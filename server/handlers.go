package server

import (
	"errors"
	"fmt"
	"github.com/egaotan/solana-http-server/codec"
	"github.com/egaotan/solana-http-server/config"
	"github.com/egaotan/solana-http-server/encoder"
	"github.com/egaotan/solana-http-server/store"
	"github.com/egaotan/solana-http-server/system"
	"github.com/egaotan/solana-http-server/wallet"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"net/http"
	"strconv"
	"time"
)

const (
	msgMissingFields = "Missing required fields"
	msgInvalidJSON   = "Invalid JSON in request body"
	msgNotFound      = "Endpoint not found"
)

type operation struct {
	name   string
	action string
}

var (
	opKeypair         = operation{"keypair", "generate keypair"}
	opMnemonicKeypair = operation{"keypair_mnemonic", "generate mnemonic keypair"}
	opCreateToken     = operation{"create_token", "create token instruction"}
	opMintToken       = operation{"mint_token", "create mint instruction"}
	opAssociated      = operation{"associated_account", "derive associated token account"}
	opSignMessage     = operation{"sign_message", "sign message"}
	opVerifyMessage   = operation{"verify_message", "verify message"}
	opSendSol         = operation{"send_sol", "create transfer instruction"}
	opSendToken       = operation{"send_token", "create token transfer instruction"}
)

// outcome carries what the audit trail may keep about a request.
type outcome struct {
	programId string
	amount    string
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, &Response{Success: true, Data: &HealthResponse{
		Status:  "healthy",
		Service: config.ServiceName,
	}})
}

func (s *Server) notFound(c *gin.Context) {
	c.JSON(http.StatusBadRequest, &Response{Success: false, Error: msgNotFound})
}

func (s *Server) bind(c *gin.Context, op operation, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.logger.Printf("%s bind err: %s request_id=%s", op.name, err.Error(), c.GetString(requestIdKey))
		operationsTotal.WithLabelValues(op.name, "bad_request").Inc()
		c.JSON(http.StatusBadRequest, &Response{Success: false, Error: msgInvalidJSON})
		return false
	}
	return true
}

func (s *Server) finish(c *gin.Context, op operation, start time.Time, data interface{}, out outcome, err error) {
	operationDuration.WithLabelValues(op.name).Observe(time.Since(start).Seconds())
	s.record(c, op, start, out, err)
	if err != nil {
		operationsTotal.WithLabelValues(op.name, "error").Inc()
		message := fmt.Sprintf("Failed to %s: %s", op.action, err.Error())
		if errors.Is(err, codec.ErrMissingField) {
			message = msgMissingFields
		}
		c.JSON(http.StatusBadRequest, &Response{Success: false, Error: message})
		return
	}
	operationsTotal.WithLabelValues(op.name, "ok").Inc()
	c.JSON(http.StatusOK, &Response{Success: true, Data: data})
}

func (s *Server) record(c *gin.Context, op operation, start time.Time, out outcome, err error) {
	if s.store == nil {
		return
	}
	record := &store.OperationRecord{
		Id:        uuid.NewString(),
		RequestId: c.GetString(requestIdKey),
		Operation: op.name,
		ProgramId: out.programId,
		Amount:    out.amount,
		Success:   err == nil,
		Duration:  time.Since(start).Microseconds(),
		CreatedAt: start,
	}
	if err != nil {
		record.Error = truncate(err.Error(), 255)
	}
	s.store.StoreOperationRecord(record)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func descriptorOutcome(d *encoder.Descriptor, amount string) outcome {
	out := outcome{amount: amount}
	if d != nil {
		out.programId = d.ProgramId
	}
	return out
}

func (s *Server) generateKeypair(c *gin.Context) {
	start := time.Now()
	s.finish(c, opKeypair, start, wallet.GenerateKeypair(), outcome{}, nil)
}

func (s *Server) mnemonicKeypair(c *gin.Context) {
	start := time.Now()
	var req MnemonicRequest
	if c.Request.ContentLength != 0 && !s.bind(c, opMnemonicKeypair, &req) {
		return
	}
	var kp *wallet.MnemonicKeypair
	var err error
	if req.Mnemonic == "" {
		kp, err = wallet.GenerateMnemonicKeypair(req.Passphrase)
	} else {
		kp, err = wallet.RecoverMnemonicKeypair(req.Mnemonic, req.Passphrase)
	}
	s.finish(c, opMnemonicKeypair, start, kp, outcome{}, err)
}

func (s *Server) createToken(c *gin.Context) {
	start := time.Now()
	var req CreateTokenRequest
	if !s.bind(c, opCreateToken, &req) {
		return
	}
	var d *encoder.Descriptor
	err := codec.RequireFields("mintAuthority", req.MintAuthority, "mint", req.Mint)
	if err == nil {
		d, err = s.encoder.InitializeMint(req.MintAuthority, req.Mint, req.Decimals, req.FreezeAuthority)
	}
	s.finish(c, opCreateToken, start, d, descriptorOutcome(d, ""), err)
}

func (s *Server) mintToken(c *gin.Context) {
	start := time.Now()
	var req MintTokenRequest
	if !s.bind(c, opMintToken, &req) {
		return
	}
	var d *encoder.Descriptor
	err := codec.RequireFields("mint", req.Mint, "destination", req.Destination, "authority", req.Authority)
	if err == nil {
		d, err = s.encoder.MintTo(req.Mint, req.Destination, req.Authority, req.Amount)
	}
	s.finish(c, opMintToken, start, d, descriptorOutcome(d, strconv.FormatUint(req.Amount, 10)), err)
}

func (s *Server) associatedAccount(c *gin.Context) {
	start := time.Now()
	var req AssociatedAccountRequest
	if !s.bind(c, opAssociated, &req) {
		return
	}
	var account *encoder.AssociatedAccount
	err := codec.RequireFields("owner", req.Owner, "mint", req.Mint)
	if err == nil {
		account, err = s.encoder.AssociatedTokenAccount(req.Owner, req.Mint)
	}
	s.finish(c, opAssociated, start, account, outcome{programId: s.encoder.Programs().AssociatedToken.String()}, err)
}

func (s *Server) signMessage(c *gin.Context) {
	start := time.Now()
	var req SignMessageRequest
	if !s.bind(c, opSignMessage, &req) {
		return
	}
	var res *wallet.SignResult
	err := codec.RequireFields("message", req.Message, "secret", req.Secret)
	if err == nil {
		res, err = wallet.Sign(req.Message, req.Secret)
	}
	s.finish(c, opSignMessage, start, res, outcome{}, err)
}

func (s *Server) verifyMessage(c *gin.Context) {
	start := time.Now()
	var req VerifyMessageRequest
	if !s.bind(c, opVerifyMessage, &req) {
		return
	}
	var res *wallet.VerifyResult
	err := codec.RequireFields("message", req.Message, "signature", req.Signature, "pubkey", req.Pubkey)
	if err == nil {
		res, err = wallet.Verify(req.Message, req.Signature, req.Pubkey)
	}
	s.finish(c, opVerifyMessage, start, res, outcome{}, err)
}

func (s *Server) sendSol(c *gin.Context) {
	start := time.Now()
	var req SendSolRequest
	if !s.bind(c, opSendSol, &req) {
		return
	}
	var d *encoder.Descriptor
	err := codec.RequireFields("from", req.From, "to", req.To)
	if err == nil {
		d, err = s.encoder.SolTransfer(req.From, req.To, req.Lamports)
	}
	sol := system.LamportsToSol(req.Lamports).String()
	if err == nil {
		s.logger.Printf("send sol: %s SOL request_id=%s", sol, c.GetString(requestIdKey))
	}
	s.finish(c, opSendSol, start, d, descriptorOutcome(d, sol), err)
}

func (s *Server) sendToken(c *gin.Context) {
	start := time.Now()
	var req SendTokenRequest
	if !s.bind(c, opSendToken, &req) {
		return
	}
	var d *encoder.Descriptor
	err := codec.RequireFields("destination", req.Destination, "mint", req.Mint, "owner", req.Owner)
	if err == nil {
		d, err = s.encoder.TokenTransfer(req.Mint, req.Owner, req.Destination, req.Amount)
	}
	s.finish(c, opSendToken, start, d, descriptorOutcome(d, strconv.FormatUint(req.Amount, 10)), err)
}
