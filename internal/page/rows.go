package page

import "fmt"

// Row is one line of the customer table as displayed.
type Row struct {
	ID          int
	Name        string
	Email       string
	SocialMedia []string
	Description string
}

// Rows renders the customer list, one row per customer in list order.
// Each handle contributes a name line followed by a username line.
func Rows(s State) []Row {
	rows := make([]Row, 0, len(s.Customers))
	for _, c := range s.Customers {
		lines := make([]string, 0, len(c.SocialMedia)*2)
		for _, sm := range c.SocialMedia {
			lines = append(lines,
				fmt.Sprintf("Social Media Name: %s", sm.SocialMediaName),
				fmt.Sprintf("Username: %s", sm.Username),
			)
		}
		rows = append(rows, Row{
			ID:          c.ID,
			Name:        c.Name,
			Email:       c.Email,
			SocialMedia: lines,
			Description: c.Description,
		})
	}
	return rows
}
