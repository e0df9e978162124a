package domain

// ============================================================
// Ordens de serviço
// ============================================================

// Order is a work order assigned to a technician.
type Order struct {
	ID            string   `json:"id"`
	Numero        string   `json:"numero"`
	ClienteID     string   `json:"clienteId"`
	ClienteNome   string   `json:"clienteNome"`
	Endereco      string   `json:"endereco"`
	Cidade        string   `json:"cidade"`
	Bairro        string   `json:"bairro"`
	Tipo          string   `json:"tipo"`       // instalacao | manutencao | reparo | vistoria
	Status        string   `json:"status"`     // aberta | em_andamento | concluida | cancelada
	Prioridade    string   `json:"prioridade"` // baixa | media | alta | urgente
	Descricao     string   `json:"descricao"`
	DataAbertura  string   `json:"dataAbertura"`
	DataPrevisao  string   `json:"dataPrevisao,omitempty"`
	DataConclusao string   `json:"dataConclusao,omitempty"`
	TecnicoID     string   `json:"tecnicoId,omitempty"`
	TecnicoNome   string   `json:"tecnicoNome,omitempty"`
	Observacoes   string   `json:"observacoes,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// OrderDetail extends Order with its related records.
type OrderDetail struct {
	Order
	Cliente   Client         `json:"cliente"`
	Tecnico   *UserRecord    `json:"tecnico,omitempty"`
	Historico []OrderHistory `json:"historico"`
	Materiais []Material     `json:"materiais"`
	Fotos     []Photo        `json:"fotos"`
}

type OrderHistory struct {
	ID          string `json:"id"`
	OrdemID     string `json:"ordemId"`
	UsuarioID   string `json:"usuarioId"`
	UsuarioNome string `json:"usuarioNome"`
	Acao        string `json:"acao"`
	Descricao   string `json:"descricao"`
	DataHora    string `json:"dataHora"`
}

type Photo struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Descricao string `json:"descricao,omitempty"`
	DataHora  string `json:"dataHora"`
}

// OrderFilter are the optional list filters for GET /orders.
type OrderFilter struct {
	Page      int
	PageSize  int
	Status    string
	TecnicoID string
}

// ClosedOrderFilter bounds GET /orders/closed by date.
type ClosedOrderFilter struct {
	StartDate string
	EndDate   string
}

// CloseOrderRequest is the body for POST /orders/{id}/close.
type CloseOrderRequest struct {
	Observacoes string   `json:"observacoes,omitempty"`
	Fotos       []string `json:"fotos,omitempty"`
}

// OrderStatistics is the counter block of GET /orders/statistics.
type OrderStatistics struct {
	OrdensAbertas      int `json:"ordensAbertas"`
	OrdensEmAndamento  int `json:"ordensEmAndamento"`
	OrdensFechadasHoje int `json:"ordensFechadasHoje"`
	OrdensDesignadas   int `json:"ordensDesignadas"`
}

// ============================================================
// Clientes
// ============================================================

type Client struct {
	ID          string   `json:"id"`
	Nome        string   `json:"nome"`
	CPFCNPJ     string   `json:"cpfCnpj"`
	Email       string   `json:"email,omitempty"`
	Telefone    string   `json:"telefone"`
	Endereco    string   `json:"endereco"`
	Numero      string   `json:"numero"`
	Complemento string   `json:"complemento,omitempty"`
	Bairro      string   `json:"bairro"`
	Cidade      string   `json:"cidade"`
	Estado      string   `json:"estado"`
	CEP         string   `json:"cep"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Observacoes string   `json:"observacoes,omitempty"`
}

// ClientFilter are the optional list filters for GET /clients.
type ClientFilter struct {
	Page     int
	PageSize int
	Search   string
}

// Customer is a subscriber record returned by GET /customers?search=.
type Customer struct {
	ID         FlexString `json:"id"`
	Nome       string     `json:"nome"`
	CPFCNPJ    string     `json:"cpfCnpj,omitempty"`
	Telefone   string     `json:"telefone,omitempty"`
	Email      string     `json:"email,omitempty"`
	Endereco   string     `json:"endereco,omitempty"`
	Cidade     string     `json:"cidade,omitempty"`
	Plano      string     `json:"plano,omitempty"`
	Status     string     `json:"status,omitempty"`
	Conexao    string     `json:"conexao,omitempty"`
	Vencimento string     `json:"vencimento,omitempty"`
}

// ============================================================
// Almoxarifado
// ============================================================

type Material struct {
	ID               string   `json:"id"`
	Codigo           string   `json:"codigo"`
	Nome             string   `json:"nome"`
	Descricao        string   `json:"descricao,omitempty"`
	Unidade          string   `json:"unidade"`
	Quantidade       float64  `json:"quantidade"`
	QuantidadeMinima *float64 `json:"quantidadeMinima,omitempty"`
	Preco            *float64 `json:"preco,omitempty"`
	Categoria        string   `json:"categoria,omitempty"`
	Localizacao      string   `json:"localizacao,omitempty"`
}

type StockOrder struct {
	ID          string           `json:"id"`
	Numero      string           `json:"numero"`
	TecnicoID   string           `json:"tecnicoId"`
	TecnicoNome string           `json:"tecnicoNome"`
	DataHora    string           `json:"dataHora"`
	Status      string           `json:"status"` // pendente | aprovado | entregue | cancelado
	Itens       []StockOrderItem `json:"itens"`
	Observacoes string           `json:"observacoes,omitempty"`
}

type StockOrderItem struct {
	ID                 string   `json:"id"`
	MaterialID         string   `json:"materialId"`
	MaterialNome       string   `json:"materialNome"`
	Quantidade         float64  `json:"quantidade"`
	QuantidadeAprovada *float64 `json:"quantidadeAprovada,omitempty"`
	QuantidadeEntregue *float64 `json:"quantidadeEntregue,omitempty"`
}

// StockFilter are the optional filters for GET /warehouse/stock.
type StockFilter struct {
	Search   string
	Category string
}

// StockOrderFilter are the optional filters for GET /warehouse/orders.
type StockOrderFilter struct {
	Status    string
	TecnicoID string
}

// StockOrderRequest is the body for POST /warehouse/orders/create.
type StockOrderRequest struct {
	Itens       []StockOrderRequestItem `json:"itens"`
	Observacoes string                  `json:"observacoes,omitempty"`
}

type StockOrderRequestItem struct {
	MaterialID string  `json:"materialId"`
	Quantidade float64 `json:"quantidade"`
}

// StockUpdateRequest is the body for PUT /warehouse/stock/update.
type StockUpdateRequest struct {
	MaterialID string  `json:"materialId"`
	Quantity   float64 `json:"quantity"`
}

// ============================================================
// Dashboard / empresa
// ============================================================

type DashboardStats struct {
	OrdensAbertas         int      `json:"ordensAbertas"`
	OrdensEmAndamento     int      `json:"ordensEmAndamento"`
	OrdensFechadasHoje    int      `json:"ordensFechadasHoje"`
	OrdensDesignadas      int      `json:"ordensDesignadas"`
	TempoMedioAtendimento *float64 `json:"tempoMedioAtendimento,omitempty"`
	SatisfacaoCliente     *float64 `json:"satisfacaoCliente,omitempty"`
}

// DashboardOverview is what the home tab renders on open.
type DashboardOverview struct {
	Stats        DashboardStats `json:"stats"`
	RecentOrders []Order        `json:"recentOrders"`
}

// CompanyBranch is served from the root API, outside /mobile.
type CompanyBranch struct {
	ID             FlexString `json:"id"`
	OrganizationID FlexString `json:"organizationId"`
	Nome           string     `json:"nome"`
	CNPJ           string     `json:"cnpj,omitempty"`
	Endereco       string     `json:"endereco,omitempty"`
	Cidade         string     `json:"cidade,omitempty"`
	Estado         string     `json:"estado,omitempty"`
	Telefone       string     `json:"telefone,omitempty"`
	Email          string     `json:"email,omitempty"`
}

// ProfileUpdate is the body for PUT /users/profile/update.
type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Location string `json:"location,omitempty"`
}
