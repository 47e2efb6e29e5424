// Thread-safe state management for analysis models.
package model

import (
	"fmt"
	"sync"
)

// StateManager manages the fitted state of a model in a thread-safe manner.
// It replaces the BaseEstimator embedding pattern with composition.
type StateManager struct {
	Fitted bool // Public for gob encoding
	mu     sync.RWMutex

	// Optional metadata - Public for gob encoding
	NVariables    int
	NObservations int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{
		Fitted: false,
	}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fitted
}

// SetFitted marks the model as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = true
}

// Reset resets the fitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = false
	s.NVariables = 0
	s.NObservations = 0
}

// SetDimensions sets the number of variables and observations seen during fitting.
func (s *StateManager) SetDimensions(nVariables, nObservations int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NVariables = nVariables
	s.NObservations = nObservations
}

// GetDimensions returns the number of variables and observations seen during fitting.
func (s *StateManager) GetDimensions() (nVariables, nObservations int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NVariables, s.NObservations
}

// RequireFitted returns an error if the model has not been fitted.
func (s *StateManager) RequireFitted() error {
	if !s.IsFitted() {
		return fmt.Errorf("model has not been fitted yet. Call Fit() first")
	}
	return nil
}

// ModelState represents the complete state of a model.
// This can be used for serialization and debugging.
type ModelState struct {
	Fitted        bool                   `json:"fitted"`
	NVariables    int                    `json:"n_variables,omitempty"`
	NObservations int                    `json:"n_observations,omitempty"`
	Params        map[string]interface{} `json:"params,omitempty"`
}

// GetState returns the current state as a ModelState struct.
func (s *StateManager) GetState() ModelState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ModelState{
		Fitted:        s.Fitted,
		NVariables:    s.NVariables,
		NObservations: s.NObservations,
	}
}

// SetState sets the state from a ModelState struct.
func (s *StateManager) SetState(state ModelState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Fitted = state.Fitted
	s.NVariables = state.NVariables
	s.NObservations = state.NObservations
}
