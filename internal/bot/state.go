package bot

import "sync"

// Шаги диалога привязки аккаунта
const (
	stepLinkEmail = iota + 1
	stepLinkPassword
)

// ChatState хранит состояние многошагового диалога
type ChatState struct {
	Action string
	Step   int
	Email  string
}

// ChatFSM управляет состояниями всех чатов
type ChatFSM struct {
	mu     sync.Mutex
	states map[int64]*ChatState
}

func NewChatFSM() *ChatFSM {
	return &ChatFSM{
		states: make(map[int64]*ChatState),
	}
}

func (fsm *ChatFSM) GetState(chatID int64) (*ChatState, bool) {
	fsm.mu.Lock()
	defer fsm.mu.Unlock()
	state, exists := fsm.states[chatID]
	return state, exists
}

func (fsm *ChatFSM) SetState(chatID int64, state *ChatState) {
	fsm.mu.Lock()
	defer fsm.mu.Unlock()
	fsm.states[chatID] = state
}

func (fsm *ChatFSM) DeleteState(chatID int64) {
	fsm.mu.Lock()
	defer fsm.mu.Unlock()
	delete(fsm.states, chatID)
}
