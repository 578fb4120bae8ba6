package service

import (
	"github.com/vixducis/pour-decisions/internal/models"
	"github.com/vixducis/pour-decisions/internal/money"
)

func groupView(g *models.Group) Group {
	return Group{ID: g.ID, Name: g.Name, Currency: g.Currency, CreatedAt: g.CreatedAt}
}

func memberView(m *models.Member) Member {
	return Member{ID: m.ID, GroupID: m.GroupID, Nickname: m.Nickname}
}

func itemView(i *models.Item) Item {
	return Item{ID: i.ID, GroupID: i.GroupID, Name: i.Name, Price: i.Price.String(), OneOff: i.OneOff}
}

// orderView converts an order whose lines have resolved prices.
func orderView(o models.Order, total money.Money) Order {
	lines := make([]OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLine{
			ID:       l.ID,
			ItemID:   l.ItemID,
			ItemName: l.ItemName,
			MemberID: l.MemberID,
			Price:    l.Price.String(),
		}
	}
	return Order{
		ID:        o.ID,
		GroupID:   o.GroupID,
		PayerID:   o.PayerID,
		Total:     total.String(),
		Lines:     lines,
		CreatedAt: o.CreatedAt,
	}
}
