package config

import (
	"sync"

	"github.com/raywall/painel-usuarios/pkg/usuario"
	"github.com/raywall/painel-usuarios/tools/emulator/types"
)

// Store guarda os usuários em memória, preservando a ordem de inserção.
type Store struct {
	mu    sync.RWMutex
	ordem []string
	itens map[string]usuario.Usuario
}

// NewStore cria um Store com a massa inicial.
func NewStore(seed []types.Registro) *Store {
	s := &Store{itens: make(map[string]usuario.Usuario, len(seed))}
	for _, r := range seed {
		s.Upsert(usuario.Usuario{
			Email:  r.Email,
			Nome:   r.Nome,
			HWID:   r.HWID,
			Status: usuario.Status(r.Status),
		})
	}
	return s
}

func (s *Store) List() []usuario.Usuario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]usuario.Usuario, 0, len(s.ordem))
	for _, email := range s.ordem {
		out = append(out, s.itens[email])
	}
	return out
}

// Upsert cria o usuário ou substitui um existente com o mesmo email.
// Retorna true quando o usuário é novo.
func (s *Store) Upsert(u usuario.Usuario) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.itens[u.Email]
	if !exists {
		s.ordem = append(s.ordem, u.Email)
	} else if u.HWID == "" {
		// hwid é somente leitura para o painel
		u.HWID = s.itens[u.Email].HWID
	}
	s.itens[u.Email] = u
	return !exists
}

func (s *Store) SetStatus(email string, status usuario.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.itens[email]
	if !ok {
		return false
	}
	u.Status = status
	s.itens[email] = u
	return true
}

func (s *Store) Delete(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.itens[email]; !ok {
		return false
	}
	delete(s.itens, email)
	for i, e := range s.ordem {
		if e == email {
			s.ordem = append(s.ordem[:i], s.ordem[i+1:]...)
			break
		}
	}
	return true
}
