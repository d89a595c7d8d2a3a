package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MJE43/pf-crosscheck/internal/engine"
	"github.com/MJE43/pf-crosscheck/internal/games"
	"github.com/MJE43/pf-crosscheck/internal/kernel"
	"github.com/MJE43/pf-crosscheck/internal/leaderboard"
	"github.com/MJE43/pf-crosscheck/internal/shim"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		EngineVersion: EngineVersion,
		GitCommit:     GitCommit,
		Uptime:        time.Since(s.startTime).Round(time.Second).String(),
		Kernels:       len(kernel.List()),
		RequestID:     middleware.GetReqID(r.Context()),
	})
}

func (s *Server) handleListKernels(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, KernelsResponse{
		Kernels:       kernel.List(),
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handleSeedHash(w http.ResponseWriter, r *http.Request) {
	var req SeedHashRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorHandler.HandleKernelError(w, r, "seed_hash", err)
		return
	}
	if req.ServerSeed == "" {
		s.errorHandler.HandleValidationError(w, r, "server_seed", "server_seed is required")
		return
	}
	s.writeJSON(w, http.StatusOK, SeedHashResponse{
		Hash:          engine.HashServerSeed(req.ServerSeed),
		Echo:          req,
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	records, err := s.decodeRecords(w, r)
	if err != nil {
		s.errorHandler.HandleKernelError(w, r, "rank", err)
		return
	}
	ranked, err := leaderboard.Rank(records)
	if err != nil {
		s.errorHandler.HandleKernelError(w, r, "rank", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ranked)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	records, err := s.decodeRecords(w, r)
	if err != nil {
		s.errorHandler.HandleKernelError(w, r, "rank", err)
		return
	}
	standings, err := leaderboard.Standings(records)
	if err != nil {
		s.errorHandler.HandleKernelError(w, r, "rank", err)
		return
	}
	s.writeJSON(w, http.StatusOK, standings)
}

func (s *Server) handleDeal(w http.ResponseWriter, r *http.Request) {
	rng, err := s.fairRNG(w, r)
	if err != nil {
		s.errorHandler.HandleKernelError(w, r, "deal", err)
		return
	}
	hand, err := games.DealHand(rng)
	if err != nil {
		s.errorHandler.HandleKernelError(w, r, "deal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, hand)
}

func (s *Server) handlePokerEngine(w http.ResponseWriter, r *http.Request) {
	var req games.PokerEngineRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorHandler.HandleKernelError(w, r, "deal", err)
		return
	}
	res, err := games.RunPokerEngine(req, s.opts.RNG)
	if err != nil {
		s.errorHandler.HandleKernelError(w, r, "deal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSlice(w http.ResponseWriter, r *http.Request) {
	in, err := shim.DecodeSliceInput(s.body(w, r))
	if err != nil {
		s.errorHandler.HandleKernelError(w, r, "slice", err)
		return
	}
	res, err := games.Slice(in)
	if err != nil {
		s.errorHandler.HandleKernelError(w, r, "slice", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSpin(w http.ResponseWriter, r *http.Request) {
	rng, err := s.fairRNG(w, r)
	if err != nil {
		s.errorHandler.HandleKernelError(w, r, "spin", err)
		return
	}
	s.writeJSON(w, http.StatusOK, games.Spin(rng))
}

func (s *Server) handleBet(w http.ResponseWriter, r *http.Request) {
	var req BetRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorHandler.HandleKernelError(w, r, "spin", err)
		return
	}
	out, err := games.ResolveBet(req.Bet, req.Result, req.AmountMinor)
	if err != nil {
		s.errorHandler.HandleKernelError(w, r, "spin", err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

// fairRNG reads an optional FairRequest. With a server seed the picks come from
// the HMAC stream and the seed hash is echoed in X-Server-Seed-Hash.
func (s *Server) fairRNG(w http.ResponseWriter, r *http.Request) (games.RNG, error) {
	var req FairRequest
	if err := s.decode(w, r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			return s.opts.RNG, nil
		}
		return nil, err
	}
	if req.Seeds.Server == "" {
		return s.opts.RNG, nil
	}

	s.logger.Debug("provably fair draw",
		zap.String("server_seed_hash", hashSeed(req.Seeds.Server)),
		zap.Uint64("nonce", req.Nonce),
	)
	w.Header().Set("X-Server-Seed-Hash", engine.HashServerSeed(req.Seeds.Server))
	return engine.NewStream(req.Seeds.Server, req.Seeds.Client, req.Nonce), nil
}

func (s *Server) body(w http.ResponseWriter, r *http.Request) io.Reader {
	body := r.Body
	if body == nil {
		body = http.NoBody
	}
	return http.MaxBytesReader(w, body, s.opts.MaxBodyBytes)
}

// decode reads one JSON value from the size-limited body. An empty body is a
// MalformedInput error wrapping io.EOF; a body that arrives after the deadline
// returns the context error.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	if err := shim.Decode(s.body(w, r), v); err != nil {
		return err
	}
	return r.Context().Err()
}

func (s *Server) decodeRecords(w http.ResponseWriter, r *http.Request) ([]leaderboard.Record, error) {
	var records []leaderboard.Record
	if err := s.decode(w, r, &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, kernel.Malformed("input", "expected a JSON array of records")
	}
	return records, nil
}
