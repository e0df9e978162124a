package handler

import (
	"fmt"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt cost used to hash fixture passwords.
var passwordCost = bcrypt.DefaultCost

type fixtureAccount struct {
	username string
	password string
	isAdmin  bool
	record   domain.UserRecord
}

// Development accounts. Passwords are only meaningful against this mock.
var fixtureAccounts = []fixtureAccount{
	{
		username: "ana", password: "admin123", isAdmin: true,
		record: domain.UserRecord{ID: "1", Name: "Ana Souza", Username: "ana", Email: "ana@fibron.com", Phone: "11987650001", Role: domain.RoleAdmin, Location: "São Paulo"},
	},
	{
		username: "joao", password: "tecnico123",
		record: domain.UserRecord{ID: "2", Name: "João Lima", Username: "joao", Email: "joao@fibron.com", Phone: "11987650002", Role: domain.RoleTechnician, Location: "Guarulhos"},
	},
	{
		username: "marta", password: "gestor123",
		record: domain.UserRecord{ID: "3", Name: "Marta Reis", Username: "marta", Email: "marta@fibron.com", Phone: "11987650003", Role: domain.RoleManager, Location: "São Paulo"},
	},
}

func ptr[T any](v T) *T { return &v }

func (b *Backend) seed() error {
	b.branches = []domain.CompanyBranch{
		{ID: "1", OrganizationID: "1", Nome: "Filial Centro", CNPJ: "12.345.678/0001-90", Endereco: "Av. Paulista, 1000", Cidade: "São Paulo", Estado: "SP", Telefone: "1133330000", Email: "centro@fibron.com"},
		{ID: "2", OrganizationID: "1", Nome: "Filial Zona Norte", CNPJ: "12.345.678/0002-71", Endereco: "Rua Voluntários da Pátria, 500", Cidade: "São Paulo", Estado: "SP"},
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), passwordCost)
	if err != nil {
		return fmt.Errorf("hash dummy password: %w", err)
	}
	b.dummyHash = dummy

	for i, acc := range fixtureAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), passwordCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", acc.username, err)
		}
		branch := b.branches[i%len(b.branches)]
		rec := acc.record
		rec.OrganizationLabel = branch.Nome
		b.users[acc.username] = &mockUser{record: rec, isAdmin: acc.isAdmin, passwordHash: hash, branch: branch}
	}

	b.clients = []domain.Client{
		{ID: "c1", Nome: "Padaria Central", CPFCNPJ: "11.222.333/0001-44", Telefone: "1130001000", Endereco: "Rua Augusta", Numero: "120", Bairro: "Consolação", Cidade: "São Paulo", Estado: "SP", CEP: "01305-000"},
		{ID: "c2", Nome: "Maria Silva", CPFCNPJ: "123.456.789-00", Telefone: "11991112222", Endereco: "Rua das Flores", Numero: "45", Bairro: "Santana", Cidade: "São Paulo", Estado: "SP", CEP: "02012-000"},
		{ID: "c3", Nome: "Condomínio Jardim", CPFCNPJ: "22.333.444/0001-55", Telefone: "1130002000", Endereco: "Av. Guarulhos", Numero: "800", Bairro: "Vila Augusta", Cidade: "Guarulhos", Estado: "SP", CEP: "07025-000", Latitude: ptr(-23.46), Longitude: ptr(-46.53)},
	}

	b.customers = []domain.Customer{
		{ID: "1", Nome: "Maria Silva", CPFCNPJ: "123.456.789-00", Telefone: "11991112222", Cidade: "São Paulo", Plano: "Fibra 300MB", Status: "ativo", Conexao: "online", Vencimento: "10"},
		{ID: "2", Nome: "Carlos Pereira", CPFCNPJ: "987.654.321-00", Telefone: "11993334444", Cidade: "Guarulhos", Plano: "Fibra 500MB", Status: "suspenso", Conexao: "offline", Vencimento: "20"},
	}

	b.materials = []domain.Material{
		{ID: "m1", Codigo: "CAB-001", Nome: "Cabo drop 1FO", Unidade: "m", Quantidade: 1500, QuantidadeMinima: ptr(300.0), Categoria: "cabos"},
		{ID: "m2", Codigo: "CON-010", Nome: "Conector SC/APC", Unidade: "un", Quantidade: 220, QuantidadeMinima: ptr(50.0), Categoria: "conectores"},
		{ID: "m3", Codigo: "ONU-100", Nome: "ONU GPON", Unidade: "un", Quantidade: 18, QuantidadeMinima: ptr(10.0), Categoria: "equipamentos", Preco: ptr(189.9)},
	}

	b.stockOrders = []domain.StockOrder{
		{ID: "s1", Numero: "REQ-0001", TecnicoID: "2", TecnicoNome: "João Lima", DataHora: "2024-05-02T08:00:00Z", Status: "aprovado",
			Itens: []domain.StockOrderItem{{ID: "s1-1", MaterialID: "m1", MaterialNome: "Cabo drop 1FO", Quantidade: 100, QuantidadeAprovada: ptr(100.0)}}},
	}

	b.orders = []domain.OrderDetail{
		{
			Order: domain.Order{ID: "101", Numero: "OS-0101", ClienteID: "c1", ClienteNome: "Padaria Central", Endereco: "Rua Augusta, 120", Cidade: "São Paulo", Bairro: "Consolação",
				Tipo: "instalacao", Status: "aberta", Prioridade: "alta", Descricao: "Instalação de fibra 300MB", DataAbertura: "2024-05-01T09:00:00Z", TecnicoID: "2", TecnicoNome: "João Lima"},
			Cliente:   b.clients[0],
			Historico: []domain.OrderHistory{{ID: "h1", OrdemID: "101", UsuarioID: "1", UsuarioNome: "Ana Souza", Acao: "criada", Descricao: "Ordem aberta", DataHora: "2024-05-01T09:00:00Z"}},
		},
		{
			Order: domain.Order{ID: "102", Numero: "OS-0102", ClienteID: "c2", ClienteNome: "Maria Silva", Endereco: "Rua das Flores, 45", Cidade: "São Paulo", Bairro: "Santana",
				Tipo: "reparo", Status: "em_andamento", Prioridade: "urgente", Descricao: "Sem sinal desde ontem", DataAbertura: "2024-05-02T10:30:00Z", TecnicoID: "2", TecnicoNome: "João Lima"},
			Cliente: b.clients[1],
		},
		{
			Order: domain.Order{ID: "103", Numero: "OS-0103", ClienteID: "c3", ClienteNome: "Condomínio Jardim", Endereco: "Av. Guarulhos, 800", Cidade: "Guarulhos", Bairro: "Vila Augusta",
				Tipo: "vistoria", Status: "concluida", Prioridade: "baixa", Descricao: "Vistoria de caixa de emenda", DataAbertura: "2024-04-20T08:00:00Z", DataConclusao: "2024-04-22T16:00:00Z", TecnicoID: "2", TecnicoNome: "João Lima"},
			Cliente: b.clients[2],
			Fotos:   []domain.Photo{{ID: "f1", URL: "https://cdn.fibron.com/os/103/1.jpg", DataHora: "2024-04-22T15:40:00Z"}},
		},
		{
			Order: domain.Order{ID: "104", Numero: "OS-0104", ClienteID: "c1", ClienteNome: "Padaria Central", Endereco: "Rua Augusta, 120", Cidade: "São Paulo", Bairro: "Consolação",
				Tipo: "manutencao", Status: "aberta", Prioridade: "media", Descricao: "Troca de ONU", DataAbertura: "2024-05-03T11:00:00Z"},
			Cliente: b.clients[0],
		},
	}
	for i := range b.orders {
		if b.orders[i].Historico == nil {
			b.orders[i].Historico = []domain.OrderHistory{}
		}
		if b.orders[i].Materiais == nil {
			b.orders[i].Materiais = []domain.Material{}
		}
		if b.orders[i].Fotos == nil {
			b.orders[i].Fotos = []domain.Photo{}
		}
	}
	return nil
}
