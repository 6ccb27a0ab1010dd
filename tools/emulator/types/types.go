package types

// Response para status e body
type Response struct {
	Status int         `json:"status" yaml:"status"`
	Body   interface{} `json:"body,omitempty" yaml:"body,omitempty"`
}

// Falha força uma resposta de erro para um método HTTP
type Falha struct {
	Method   string   `json:"method" yaml:"method"`
	Response Response `json:"response" yaml:"response"`
}

// Registro é um usuário da massa inicial do emulador
type Registro struct {
	Email  string `json:"email" yaml:"email"`
	Nome   string `json:"nome" yaml:"nome"`
	HWID   string `json:"hwid,omitempty" yaml:"hwid,omitempty"`
	Status string `json:"status" yaml:"status"`
}
