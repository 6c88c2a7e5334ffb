// Package access decides what each role may see.
package access

import (
	"slices"
	"strings"

	"github.com/teamops/dashboard/structs"
)

// Messages shown when a role may not open a page.
const (
	DeniedTitle   = "Acesso Negado"
	DeniedMessage = "Você não tem permissão para acessar esta página."
)

// Link is a sidebar entry.
type Link struct {
	Label string         `json:"label"`
	Href  string         `json:"href"`
	Icon  string         `json:"icon"`
	Roles []structs.Role `json:"roles"`
}

var allRoles = []structs.Role{structs.RoleAdmin, structs.RoleManager, structs.RoleEmployee}

// Links is the full sidebar in display order.
var Links = []Link{
	{Label: "Visão Geral", Href: "/dashboard", Icon: "layout-dashboard", Roles: allRoles},
	{Label: "Colaboradores", Href: "/dashboard/employees", Icon: "users", Roles: []structs.Role{structs.RoleAdmin, structs.RoleManager}},
	{Label: "Tarefas", Href: "/dashboard/tasks", Icon: "clipboard-list", Roles: allRoles},
	{Label: "Times", Href: "/dashboard/teams", Icon: "users-round", Roles: []structs.Role{structs.RoleAdmin, structs.RoleManager}},
}

// LinksFor returns the sidebar of role. Unknown roles see the EMPLOYEE
// sidebar.
func LinksFor(role string) []Link {
	r := structs.ParseRole(role)
	out := make([]Link, 0, len(Links))
	for _, l := range Links {
		if slices.Contains(l.Roles, r) {
			out = append(out, l)
		}
	}
	return out
}

// Allowed reports whether role is one of allowed.
func Allowed(role string, allowed ...structs.Role) bool {
	return slices.Contains(allowed, structs.ParseRole(role))
}

// CanOpen reports whether role may open path. Paths under a sidebar entry
// inherit its roles; the longest matching entry wins.
func CanOpen(role, path string) bool {
	var match *Link
	for i := range Links {
		l := &Links[i]
		if path == l.Href || strings.HasPrefix(path, l.Href+"/") {
			if match == nil || len(l.Href) > len(match.Href) {
				match = l
			}
		}
	}
	if match == nil {
		return true
	}
	return Allowed(role, match.Roles...)
}

// CanManage reports whether role may create, edit or delete employees and
// teams.
func CanManage(role string) bool {
	return Allowed(role, structs.RoleAdmin, structs.RoleManager)
}
