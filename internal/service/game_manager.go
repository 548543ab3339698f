// service/game_manager.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/benbeisheim/scalechess-backend/internal/model"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

type GameManager struct {
	games map[string]*model.Game
	ttl   time.Duration
	mu    sync.RWMutex
}

// NewGameManager returns an empty manager. Games without connections that
// have been idle for longer than ttl are removed by Run; ttl <= 0 disables it.
func NewGameManager(ttl time.Duration) *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
		ttl:   ttl,
	}
}

// Run sweeps idle games every interval until ctx is cancelled.
func (gm *GameManager) Run(ctx context.Context, interval time.Duration) {
	if gm.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := gm.sweep(now); n > 0 {
				log.WithField("removed", n).WithField("remaining", gm.Count()).Info("swept idle games")
			}
		}
	}
}

// sweep removes abandoned games idle since before now-ttl and reports how many.
func (gm *GameManager) sweep(now time.Time) int {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	removed := 0
	for id, game := range gm.games {
		if game.ConnectionCount() > 0 {
			continue
		}
		if now.Sub(game.IdleSince()) > gm.ttl {
			delete(gm.games, id)
			removed++
		}
	}
	return removed
}

func (gm *GameManager) CreateGame() (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gameID := uuid.New().String()
	if _, exists := gm.games[gameID]; exists {
		return nil, fmt.Errorf("game %s already exists", gameID)
	}

	game := model.NewGame(gameID)
	gm.games[gameID] = game
	log.WithField("game", gameID).Info("game created")
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	return game, nil
}

func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.games, gameID)
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return len(gm.games)
}
