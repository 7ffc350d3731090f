//go:build e2e

package fakebackend

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Record is a catalog entry of the fake storefront backend.
type Record struct {
	ID      int
	Title   string
	Price   decimal.Decimal
	Stock   int
	GroupID int
}

type cartState struct {
	id      int
	enabled bool
	order   []int
	amounts map[int]int
}

type orderState struct {
	ID            int
	Email         string
	PaymentMethod string
	Date          time.Time
	Lines         map[int]int
}

// Server is an in-memory stand-in for the storefront REST backend. Cart listings
// are served inside a "$values" envelope and the admin cart list bare, so both
// shapes go through the service. Like the real backend, cart listings carry no
// stock; only add/remove echoes do.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	groups     map[int]string
	records    map[int]*Record
	carts      map[string]*cartState
	orders     []orderState
	calls      map[string]int
	failCommit string
}

func New(groups map[int]string, records []Record) *Server {
	s := &Server{
		groups:  groups,
		records: make(map[int]*Record, len(records)),
		carts:   make(map[string]*cartState),
		calls:   make(map[string]int),
	}
	for i := range records {
		r := records[i]
		s.records[r.ID] = &r
	}

	engine := gin.New()
	api := engine.Group("/api")
	api.GET("/Records", s.listRecords)
	api.GET("/Groups", s.listGroups)
	api.GET("/CartDetails/GetCartDetailsByEmail/:email", s.listLines)
	api.POST("/CartDetails/addToCartDetailAndCart/:email", s.addLine)
	api.POST("/CartDetails/removeFromCartDetailAndCart/:email", s.removeLine)
	api.GET("/Carts", s.listCarts)
	api.GET("/Carts/status/:email", s.status)
	api.POST("/Carts/Enable/:email", s.toggle(true))
	api.POST("/Carts/Disable/:email", s.toggle(false))
	api.POST("/Orders/FromCart/:email", s.commit)
	api.GET("/Orders", s.listAllOrders)
	api.GET("/Orders/GetOrdersByUserEmail/:email", s.listOrders)

	s.Server = httptest.NewServer(engine)
	return s
}

// FailCommits makes every order commit answer 500 with message until cleared with "".
func (s *Server) FailCommits(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCommit = message
}

// Calls counts requests per route name, e.g. "add" or "commit".
func (s *Server) Calls(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *Server) Stock(recordID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[recordID].Stock
}

// Reset empties carts and orders and restores the given stock levels.
func (s *Server) Reset(stock map[int]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts = make(map[string]*cartState)
	s.orders = nil
	s.calls = make(map[string]int)
	s.failCommit = ""
	for id, n := range stock {
		if r, ok := s.records[id]; ok {
			r.Stock = n
		}
	}
}

func (s *Server) cartLocked(email string) *cartState {
	email = strings.ToLower(email)
	c, ok := s.carts[email]
	if !ok {
		c = &cartState{id: len(s.carts) + 1, enabled: true, amounts: make(map[int]int)}
		s.carts[email] = c
	}
	return c
}

func (s *Server) listRecords(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["records"]++

	ids := make([]int, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]gin.H, 0, len(ids))
	for _, id := range ids {
		r := s.records[id]
		out = append(out, gin.H{
			"idRecord":    r.ID,
			"titleRecord": r.Title,
			"price":       r.Price,
			"stock":       r.Stock,
			"groupId":     r.GroupID,
			"nameGroup":   s.groups[r.GroupID],
		})
	}
	c.JSON(http.StatusOK, gin.H{"$values": out})
}

func (s *Server) listGroups(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]gin.H, 0, len(s.groups))
	for id, name := range s.groups {
		out = append(out, gin.H{"idGroup": id, "nameGroup": name})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listLines(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["lines"]++

	cs := s.cartLocked(c.Param("email"))
	out := make([]gin.H, 0, len(cs.order))
	for _, id := range cs.order {
		r := s.records[id]
		amount := cs.amounts[id]
		out = append(out, gin.H{
			"recordId":    id,
			"cartId":      cs.id,
			"titleRecord": r.Title,
			"groupName":   s.groups[r.GroupID],
			"amount":      amount,
			"price":       r.Price,
			"total":       r.Price.Mul(decimal.NewFromInt(int64(amount))),
		})
	}
	c.JSON(http.StatusOK, gin.H{"$values": out})
}

func (s *Server) addLine(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["add"]++

	r, amount, ok := s.lineArgs(c)
	if !ok {
		return
	}
	if r.Stock < amount {
		c.JSON(http.StatusConflict, gin.H{"message": "Not enough stock"})
		return
	}
	cs := s.cartLocked(c.Param("email"))
	if _, in := cs.amounts[r.ID]; !in {
		cs.order = append(cs.order, r.ID)
	}
	cs.amounts[r.ID] += amount
	r.Stock -= amount
	c.JSON(http.StatusOK, gin.H{"recordId": r.ID, "amount": cs.amounts[r.ID], "stock": r.Stock})
}

func (s *Server) removeLine(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["remove"]++

	r, amount, ok := s.lineArgs(c)
	if !ok {
		return
	}
	cs := s.cartLocked(c.Param("email"))
	removed := min(amount, cs.amounts[r.ID])
	if removed == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Record not in cart"})
		return
	}
	cs.amounts[r.ID] -= removed
	r.Stock += removed
	c.JSON(http.StatusOK, gin.H{"recordId": r.ID, "amount": cs.amounts[r.ID], "stock": r.Stock})
}

func (s *Server) lineArgs(c *gin.Context) (*Record, int, bool) {
	id, err := strconv.Atoi(c.Query("recordId"))
	r, found := s.records[id]
	if err != nil || !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Record not found"})
		return nil, 0, false
	}
	amount, err := strconv.Atoi(c.DefaultQuery("amount", "1"))
	if err != nil || amount < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid amount"})
		return nil, 0, false
	}
	return r, amount, true
}

func (s *Server) listCarts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]gin.H, 0, len(s.carts))
	for email, cs := range s.carts {
		items, total := 0, decimal.Zero
		for id, n := range cs.amounts {
			items += n
			total = total.Add(s.records[id].Price.Mul(decimal.NewFromInt(int64(n))))
		}
		out = append(out, gin.H{
			"idCart":     cs.id,
			"userEmail":  email,
			"totalItems": items,
			"totalPrice": total,
			"enabled":    cs.enabled,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) status(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"enabled": s.cartLocked(c.Param("email")).enabled})
}

func (s *Server) toggle(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.calls["toggle"]++

		cs := s.cartLocked(c.Param("email"))
		cs.enabled = enabled
		c.JSON(http.StatusOK, gin.H{"idCart": cs.id, "userEmail": c.Param("email"), "enabled": enabled})
	}
}

func (s *Server) commit(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["commit"]++

	if s.failCommit != "" {
		c.JSON(http.StatusInternalServerError, gin.H{"message": s.failCommit})
		return
	}

	var body struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid body"})
		return
	}

	email := strings.ToLower(c.Param("email"))
	cs := s.cartLocked(email)
	lines := make(map[int]int)
	for id, n := range cs.amounts {
		if n > 0 {
			lines[id] = n
		}
	}
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
		return
	}

	o := orderState{
		ID:            len(s.orders) + 1,
		Email:         email,
		PaymentMethod: body.PaymentMethod,
		Date:          time.Now().UTC(),
		Lines:         lines,
	}
	s.orders = append(s.orders, o)
	cs.order = nil
	cs.amounts = make(map[int]int)
	c.JSON(http.StatusOK, s.orderJSON(o))
}

func (s *Server) listOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(c.Param("email"))
	out := []gin.H{}
	for _, o := range s.orders {
		if o.Email == email {
			out = append(out, s.orderJSON(o))
		}
	}
	c.JSON(http.StatusOK, gin.H{"$values": out})
}

func (s *Server) listAllOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]gin.H, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, s.orderJSON(o))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) orderJSON(o orderState) gin.H {
	total := decimal.Zero
	details := make([]gin.H, 0, len(o.Lines))
	for id, n := range o.Lines {
		r := s.records[id]
		total = total.Add(r.Price.Mul(decimal.NewFromInt(int64(n))))
		details = append(details, gin.H{"recordId": id, "titleRecord": r.Title, "amount": n, "price": r.Price})
	}
	return gin.H{
		"idOrder":       o.ID,
		"userEmail":     o.Email,
		"orderDate":     o.Date.Format(time.RFC3339),
		"paymentMethod": o.PaymentMethod,
		"total":         total,
		"orderDetails":  gin.H{"$values": details},
	}
}
