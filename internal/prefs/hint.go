package prefs

import (
	"context"
	"errors"
	"strconv"

	"github.com/robalobadob/ninewords/internal/hint"
)

// HintFlags binds the three lock-hint flags of one player to a Store.
type HintFlags struct {
	store  Store
	player string
}

// NewHintFlags scopes hint flags to player.
func NewHintFlags(store Store, player string) *HintFlags {
	return &HintFlags{store: store, player: player}
}

func (h *HintFlags) key(name string) string { return "hint/" + h.player + "/" + name }

// Load reads all flags. Missing or unparsable values read as their zero value.
func (h *HintFlags) Load(ctx context.Context) (hint.Prefs, error) {
	var p hint.Prefs
	var err error
	if p.Dismissed, err = h.getBool(ctx, "dismissed"); err != nil {
		return p, err
	}
	if p.LockUsed, err = h.getBool(ctx, "lockUsed"); err != nil {
		return p, err
	}
	v, err := h.get(ctx, "views")
	if err != nil {
		return p, err
	}
	p.Views, _ = strconv.Atoi(v)
	return p, nil
}

// MarkLockUsed records that the player discovered tile locking.
func (h *HintFlags) MarkLockUsed(ctx context.Context) error {
	return h.store.Set(ctx, h.key("lockUsed"), "true")
}

// IncrementViews bumps the persisted view count by one.
func (h *HintFlags) IncrementViews(ctx context.Context) error {
	v, err := h.get(ctx, "views")
	if err != nil {
		return err
	}
	n, _ := strconv.Atoi(v)
	return h.store.Set(ctx, h.key("views"), strconv.Itoa(n+1))
}

// Dismiss permanently hides the hint.
func (h *HintFlags) Dismiss(ctx context.Context) error {
	return h.store.Set(ctx, h.key("dismissed"), "true")
}

func (h *HintFlags) get(ctx context.Context, name string) (string, error) {
	v, err := h.store.Get(ctx, h.key(name))
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (h *HintFlags) getBool(ctx context.Context, name string) (bool, error) {
	v, err := h.get(ctx, name)
	if err != nil {
		return false, err
	}
	b, _ := strconv.ParseBool(v)
	return b, nil
}
