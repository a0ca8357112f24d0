package client

// ModalState is the single modal state machine: Closed, or Open with
// content and options.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
)

type ModalOptions struct {
	Title     string
	Size      string
	ClassName string
}

// ModalStore holds the single modal slot.
type ModalStore struct {
	BaseStore

	state   ModalState
	content any
	options ModalOptions
}

func newModalStore(root *RootStore) *ModalStore {
	return &ModalStore{
		BaseStore: newBaseStore(root),
		options:   ModalOptions{Size: "small"},
	}
}

func (s *ModalStore) State() ModalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ModalStore) IsOpen() bool {
	return s.State() == ModalOpen
}

func (s *ModalStore) Content() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

func (s *ModalStore) Options() ModalOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options
}

func (s *ModalStore) Open(content any, options ModalOptions) {
	if options.Size == "" {
		options.Size = "small"
	}
	s.batch(func() {
		s.state = ModalOpen
		s.content = content
		s.options = options
	})
}

func (s *ModalStore) Close() {
	s.batch(func() {
		s.state = ModalClosed
		s.content = nil
		s.options = ModalOptions{Size: "small"}
	})
}
