package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warp-contracts/arns-engine/src/contract"
	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

func statusFor(err error) int {
	switch contract.KindOf(err) {
	case contract.KindValidation:
		return http.StatusBadRequest
	case contract.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (self *Server) onGetState(c *gin.Context) {
	state, height := self.provider.Get()
	if state == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot evaluated yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"height": height, "state": state})
}

func (self *Server) onGetBalance(c *gin.Context) {
	state, height := self.provider.Get()
	if state == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot evaluated yet"})
		return
	}
	address := c.Param("address")
	c.JSON(http.StatusOK, gin.H{
		"height":  height,
		"address": address,
		"balance": contract.Balance(state, address),
	})
}

func (self *Server) onGetRecord(c *gin.Context) {
	state, height := self.provider.Get()
	if state == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot evaluated yet"})
		return
	}
	record, err := contract.Record(state, c.Param("name"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"height": height, "record": record})
}

func (self *Server) onGetAuction(c *gin.Context) {
	quote, err := self.provider.Quote(c.Param("name"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	self.monitor.Report.Gateway.State.QuotesServed.Inc()
	c.JSON(http.StatusOK, quote)
}

// onGetPrice quotes a write operation, e.g.
// GET /v1/price?function=buyRecord&name=example&type=lease&years=1
func (self *Server) onGetPrice(c *gin.Context) {
	state, height := self.provider.Get()
	if state == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot evaluated yet"})
		return
	}

	var in struct {
		Function string     `form:"function"`
		Name     string     `form:"name"`
		Type     string     `form:"type"`
		Years    int        `form:"years"`
		Qty      mio.Amount `form:"qty"`
	}
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := contract.Input{
		Function: in.Function,
		Name:     in.Name,
		Type:     in.Type,
		Years:    in.Years,
		Qty:      in.Qty,
	}
	// Quotes answer over the snapshot as-is
	ectx := contract.ExecutionContext{Height: height}

	price, err := contract.PriceForInteraction(state, input, ectx)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	self.monitor.Report.Gateway.State.QuotesServed.Inc()
	c.JSON(http.StatusOK, gin.H{
		"height":   height,
		"function": in.Function,
		"name":     in.Name,
		"price":    price,
	})
}
