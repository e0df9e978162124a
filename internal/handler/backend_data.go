package handler

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
)

// ============================================================
// Orders
// ============================================================

var orderStatuses = map[string]bool{"aberta": true, "em_andamento": true, "concluida": true, "cancelada": true}

func (b *Backend) listOrders(status, tecnicoID string) []domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := []domain.Order{}
	for _, o := range b.orders {
		if status != "" && o.Status != status {
			continue
		}
		if tecnicoID != "" && o.TecnicoID != tecnicoID {
			continue
		}
		out = append(out, o.Order)
	}
	return out
}

func (b *Backend) openOrders() []domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := []domain.Order{}
	for _, o := range b.orders {
		if o.Status == "aberta" || o.Status == "em_andamento" {
			out = append(out, o.Order)
		}
	}
	return out
}

// closedOrders filters concluded orders by conclusion date (YYYY-MM-DD bounds, inclusive).
func (b *Backend) closedOrders(start, end string) []domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := []domain.Order{}
	for _, o := range b.orders {
		if o.Status != "concluida" {
			continue
		}
		day := datePart(o.DataConclusao)
		if start != "" && day < start {
			continue
		}
		if end != "" && day > end {
			continue
		}
		out = append(out, o.Order)
	}
	return out
}

func (b *Backend) recentOrders(limit int) []domain.Order {
	b.mu.RLock()
	all := make([]domain.Order, 0, len(b.orders))
	for _, o := range b.orders {
		all = append(all, o.Order)
	}
	b.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].DataAbertura > all[j].DataAbertura })
	if limit < len(all) {
		all = all[:limit]
	}
	return all
}

func (b *Backend) orderIndex(id string) int {
	for i := range b.orders {
		if b.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) orderDetail(id string) (domain.OrderDetail, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.orderIndex(id)
	if i < 0 {
		return domain.OrderDetail{}, notFoundError(fmt.Sprintf("ordem %s não encontrada", id))
	}
	return b.orders[i], nil
}

func (b *Backend) createOrder(o domain.Order, by domain.UserRecord) (domain.Order, error) {
	if o.ClienteID == "" || o.Descricao == "" {
		return domain.Order{}, validationError("clienteId e descricao são obrigatórios")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var client domain.Client
	found := false
	for _, c := range b.clients {
		if c.ID == o.ClienteID {
			client, found = c, true
			break
		}
	}
	if !found {
		return domain.Order{}, notFoundError(fmt.Sprintf("cliente %s não encontrado", o.ClienteID))
	}

	id := b.nextID()
	now := nowRFC3339()
	o.ID = id
	o.Numero = "OS-" + id
	o.ClienteNome = client.Nome
	o.Status = "aberta"
	o.DataAbertura = now
	if o.Prioridade == "" {
		o.Prioridade = "media"
	}

	b.orders = append(b.orders, domain.OrderDetail{
		Order:   o,
		Cliente: client,
		Historico: []domain.OrderHistory{{
			ID: id + "-h1", OrdemID: id, UsuarioID: by.ID, UsuarioNome: by.Name,
			Acao: "criada", Descricao: "Ordem aberta", DataHora: now,
		}},
		Materiais: []domain.Material{},
		Fotos:     []domain.Photo{},
	})
	return o, nil
}

// updateOrder applies the supported fields of changes. Unknown fields are ignored.
func (b *Backend) updateOrder(id string, changes map[string]any, by domain.UserRecord) (domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.orderIndex(id)
	if i < 0 {
		return domain.Order{}, notFoundError(fmt.Sprintf("ordem %s não encontrada", id))
	}
	o := &b.orders[i].Order

	fields := map[string]*string{
		"status":       &o.Status,
		"prioridade":   &o.Prioridade,
		"observacoes":  &o.Observacoes,
		"descricao":    &o.Descricao,
		"tecnicoId":    &o.TecnicoID,
		"dataPrevisao": &o.DataPrevisao,
	}
	next := map[string]string{}
	for k, v := range changes {
		if _, ok := fields[k]; !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return domain.Order{}, validationError(fmt.Sprintf("campo %s deve ser texto", k))
		}
		if k == "status" && !orderStatuses[s] {
			return domain.Order{}, validationError(fmt.Sprintf("status inválido: %s", s))
		}
		next[k] = s
	}
	for k, s := range next {
		*fields[k] = s
	}
	if tid, ok := next["tecnicoId"]; ok {
		o.TecnicoNome = ""
		for _, u := range b.users {
			if u.record.ID == tid {
				o.TecnicoNome = u.record.Name
			}
		}
	}
	if len(next) > 0 {
		b.appendHistory(i, by, "atualizada", fmt.Sprintf("%d campo(s) alterado(s)", len(next)))
	}
	return *o, nil
}

func (b *Backend) closeOrder(id string, req domain.CloseOrderRequest, by domain.UserRecord) (domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.orderIndex(id)
	if i < 0 {
		return domain.Order{}, notFoundError(fmt.Sprintf("ordem %s não encontrada", id))
	}
	o := &b.orders[i]
	if o.Status == "concluida" || o.Status == "cancelada" {
		return domain.Order{}, validationError(fmt.Sprintf("ordem %s já encerrada", id))
	}

	now := nowRFC3339()
	o.Status = "concluida"
	o.DataConclusao = now
	if req.Observacoes != "" {
		o.Observacoes = req.Observacoes
	}
	for _, url := range req.Fotos {
		o.Fotos = append(o.Fotos, domain.Photo{ID: fmt.Sprintf("%s-f%d", id, len(o.Fotos)+1), URL: url, DataHora: now})
	}
	b.appendHistory(i, by, "concluida", "Ordem encerrada pelo técnico")
	return o.Order, nil
}

// appendHistory must be called with b.mu held.
func (b *Backend) appendHistory(i int, by domain.UserRecord, action, desc string) {
	o := &b.orders[i]
	o.Historico = append(o.Historico, domain.OrderHistory{
		ID:          fmt.Sprintf("%s-h%d", o.ID, len(o.Historico)+1),
		OrdemID:     o.ID,
		UsuarioID:   by.ID,
		UsuarioNome: by.Name,
		Acao:        action,
		Descricao:   desc,
		DataHora:    nowRFC3339(),
	})
}

func (b *Backend) statistics(userID string) domain.OrderStatistics {
	b.mu.RLock()
	defer b.mu.RUnlock()

	today := time.Now().UTC().Format(time.DateOnly)
	var s domain.OrderStatistics
	for _, o := range b.orders {
		switch o.Status {
		case "aberta":
			s.OrdensAbertas++
		case "em_andamento":
			s.OrdensEmAndamento++
		case "concluida":
			if datePart(o.DataConclusao) == today {
				s.OrdensFechadasHoje++
			}
		}
		if o.TecnicoID == userID && (o.Status == "aberta" || o.Status == "em_andamento") {
			s.OrdensDesignadas++
		}
	}
	return s
}

func (b *Backend) dashboardStats(userID string) domain.DashboardStats {
	s := b.statistics(userID)
	return domain.DashboardStats{
		OrdensAbertas:         s.OrdensAbertas,
		OrdensEmAndamento:     s.OrdensEmAndamento,
		OrdensFechadasHoje:    s.OrdensFechadasHoje,
		OrdensDesignadas:      s.OrdensDesignadas,
		TempoMedioAtendimento: ptr(4.5),
		SatisfacaoCliente:     ptr(4.8),
	}
}

// ============================================================
// Clients & customers
// ============================================================

func (b *Backend) searchClients(term string) []domain.Client {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := []domain.Client{}
	for _, c := range b.clients {
		if term == "" || containsFold(c.Nome, term) || containsFold(c.CPFCNPJ, term) || containsFold(c.Cidade, term) {
			out = append(out, c)
		}
	}
	return out
}

func (b *Backend) client(id string) (domain.Client, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, c := range b.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Client{}, notFoundError(fmt.Sprintf("cliente %s não encontrado", id))
}

func (b *Backend) searchCustomers(term string) []domain.Customer {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := []domain.Customer{}
	for _, c := range b.customers {
		if term == "" || containsFold(c.Nome, term) || containsFold(c.CPFCNPJ, term) {
			out = append(out, c)
		}
	}
	return out
}

// ============================================================
// Warehouse
// ============================================================

func (b *Backend) stock(search, category string) []domain.Material {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := []domain.Material{}
	for _, m := range b.materials {
		if category != "" && !strings.EqualFold(m.Categoria, category) {
			continue
		}
		if search != "" && !containsFold(m.Nome, search) && !containsFold(m.Codigo, search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (b *Backend) listStockOrders(status, tecnicoID string) []domain.StockOrder {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := []domain.StockOrder{}
	for _, o := range b.stockOrders {
		if status != "" && o.Status != status {
			continue
		}
		if tecnicoID != "" && o.TecnicoID != tecnicoID {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (b *Backend) createStockOrder(req domain.StockOrderRequest, by domain.UserRecord) (domain.StockOrder, error) {
	if len(req.Itens) == 0 {
		return domain.StockOrder{}, validationError("a requisição precisa de ao menos um item")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID()
	order := domain.StockOrder{
		ID:          "s" + id,
		Numero:      "REQ-" + id,
		TecnicoID:   by.ID,
		TecnicoNome: by.Name,
		DataHora:    nowRFC3339(),
		Status:      "pendente",
		Observacoes: req.Observacoes,
	}
	for n, item := range req.Itens {
		if item.Quantidade <= 0 {
			return domain.StockOrder{}, validationError("quantidade deve ser positiva")
		}
		m, ok := b.materialLocked(item.MaterialID)
		if !ok {
			return domain.StockOrder{}, notFoundError(fmt.Sprintf("material %s não encontrado", item.MaterialID))
		}
		order.Itens = append(order.Itens, domain.StockOrderItem{
			ID:           fmt.Sprintf("%s-%d", order.ID, n+1),
			MaterialID:   m.ID,
			MaterialNome: m.Nome,
			Quantidade:   item.Quantidade,
		})
	}
	b.stockOrders = append(b.stockOrders, order)
	return order, nil
}

func (b *Backend) updateStock(req domain.StockUpdateRequest) (domain.Material, error) {
	if req.Quantity < 0 {
		return domain.Material{}, validationError("quantidade não pode ser negativa")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.materials {
		if b.materials[i].ID == req.MaterialID {
			b.materials[i].Quantidade = req.Quantity
			return b.materials[i], nil
		}
	}
	return domain.Material{}, notFoundError(fmt.Sprintf("material %s não encontrado", req.MaterialID))
}

func (b *Backend) materialLocked(id string) (domain.Material, bool) {
	for _, m := range b.materials {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Material{}, false
}

// ============================================================
// Users & company
// ============================================================

func (b *Backend) technicians() []domain.UserRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := []domain.UserRecord{}
	for _, u := range b.users {
		if u.record.Role == domain.RoleTechnician {
			out = append(out, u.record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *Backend) updateProfile(userID string, p domain.ProfileUpdate) (domain.UserRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range b.users {
		if u.record.ID != userID {
			continue
		}
		set := func(dst *string, v string) {
			if v != "" {
				*dst = v
			}
		}
		set(&u.record.Name, p.Name)
		set(&u.record.Email, p.Email)
		set(&u.record.Phone, p.Phone)
		set(&u.record.Avatar, p.Avatar)
		set(&u.record.Location, p.Location)
		return u.record, nil
	}
	return domain.UserRecord{}, notFoundError("usuário não encontrado")
}

func (b *Backend) branch(organizationID, branchID string) (domain.CompanyBranch, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, br := range b.branches {
		if br.OrganizationID.String() == organizationID && br.ID.String() == branchID {
			return br, nil
		}
	}
	return domain.CompanyBranch{}, notFoundError(fmt.Sprintf("filial %s/%s não encontrada", organizationID, branchID))
}

func nowRFC3339() string { return time.Now().UTC().Format(time.RFC3339) }

// datePart returns the YYYY-MM-DD prefix of an RFC 3339 timestamp.
func datePart(ts string) string {
	if len(ts) < len(time.DateOnly) {
		return ts
	}
	return ts[:len(time.DateOnly)]
}
