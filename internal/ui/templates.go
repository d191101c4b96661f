package ui

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// NavLink is one entry in the header navigation.
type NavLink struct {
	Href  string
	Label string
}

// Header configures the shared page header. Every role renders the
// same header component with a different accent and link set.
type Header struct {
	Variant RoleVariant
	Accent  string
	Title   string
	Links   []NavLink
}

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	// Backend timestamps arrive as RFC 3339 strings.
	"formatTime": func(s string) string {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return s
		}
		return t.Format("2006-01-02 15:04")
	},
	"relTime": func(s string) string {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return s
		}
		return humanize.Time(t)
	},
	"money": func(v float64) string {
		return "$" + humanize.CommafWithDigits(v, 2)
	},
	"statusColor": func(status string) string {
		switch strings.ToLower(status) {
		case "pending":
			return "bg-yellow-100 text-yellow-800"
		case "picked_up", "in_transit":
			return "bg-blue-100 text-blue-800"
		case "delivered":
			return "bg-green-100 text-green-800"
		case "cancelled":
			return "bg-gray-100 text-gray-800"
		default:
			return "bg-gray-100 text-gray-800"
		}
	},
	"roleLabel": func(role any) string {
		switch fmt.Sprint(role) {
		case "supplier":
			return "Supplier"
		case "shipping_company":
			return "Shipping Company"
		case "admin":
			return "Administrator"
		default:
			return "Merchant"
		}
	},
	"truncate": func(s string, n int) string {
		if len(s) <= n {
			return s
		}
		return s[:n] + "..."
	},
}

// render writes a page; template failures surface as a 500.
func (ui *UI) render(w http.ResponseWriter, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderTemplate(w, name, data); err != nil {
		ui.logger.Error("render failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// renderError shows the shared error page.
func (ui *UI) renderError(w http.ResponseWriter, title string, err error) {
	ui.logger.Warn("page error", "title", title, "error", err)
	w.WriteHeader(http.StatusBadGateway)
	ui.render(w, "error", map[string]any{
		"Title":   title,
		"Header":  ui.headerForUser(),
		"User":    ui.sess.User(),
		"Message": err.Error(),
	})
}

// renderTemplate renders a template with the given data.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	layout, ok := templates["layout"]
	if !ok {
		return fmt.Errorf("layout template not found")
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(layout)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	if _, err := tmpl.New("content").Parse(content); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	return tmpl.Execute(w, data)
}

// templates holds all template content. In a production app, these would be
// loaded from files or generated by templ.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-50 min-h-screen">
    {{if .Header}}
    <nav class="shadow-sm border-b bg-white" style="border-top: 3px solid {{.Header.Accent}};">
        <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex justify-between h-16">
                <div class="flex">
                    <a href="/" class="flex items-center px-2 py-2 text-xl font-bold" style="color: {{.Header.Accent}};">
                        {{.Header.Title}}
                    </a>
                    <div class="hidden sm:ml-6 sm:flex sm:space-x-8">
                        {{range .Header.Links}}
                        <a href="{{.Href}}" class="border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">
                            {{.Label}}
                        </a>
                        {{end}}
                    </div>
                </div>
                <div class="flex items-center space-x-4">
                    <a href="/notifications" class="relative text-sm text-gray-500 hover:text-gray-700">
                        Notifications
                        <span id="unread-badge" class="hidden absolute -top-2 -right-3 bg-red-500 text-white text-xs rounded-full px-1.5"></span>
                    </a>
                    {{if .User}}
                    <span class="text-sm text-gray-500">{{.User.Name}}</span>
                    {{end}}
                    <a href="/logout" class="text-sm text-gray-500 hover:text-gray-700">Logout</a>
                </div>
            </div>
        </div>
    </nav>
    <script>
        async function pollBadge() {
            try {
                const res = await fetch('/badge');
                const body = await res.json();
                const badge = document.getElementById('unread-badge');
                if (body.unreadCount > 0) {
                    badge.textContent = body.unreadCount;
                    badge.classList.remove('hidden');
                } else {
                    badge.classList.add('hidden');
                }
            } catch (e) { /* backend offline */ }
        }
        pollBadge();
        setInterval(pollBadge, 30000);
    </script>
    {{end}}

    <main class="max-w-7xl mx-auto py-6 sm:px-6 lg:px-8">
        {{template "content" .}}
    </main>
</body>
</html>`,

	"landing": `{{define "content"}}
<div class="text-center py-16">
    <h1 class="text-4xl font-extrabold text-gray-900">Tijara</h1>
    <p class="mt-4 text-lg text-gray-600">One platform for merchants, suppliers, and shipping companies.</p>
    {{if .Registered}}
    <div class="mt-6 max-w-md mx-auto rounded-md bg-green-50 p-4">
        <div class="text-sm text-green-700">Account created. You are signed in.</div>
    </div>
    {{end}}
    <div class="mt-8 flex justify-center space-x-4">
        <a href="/login" class="px-6 py-3 rounded-md text-white bg-blue-600 hover:bg-blue-700 text-sm font-medium">Sign in</a>
        <a href="/register" class="px-6 py-3 rounded-md text-blue-600 border border-blue-600 hover:bg-blue-50 text-sm font-medium">Create account</a>
    </div>
</div>
<div class="grid grid-cols-1 md:grid-cols-3 gap-6 px-4">
    <div class="bg-white rounded-lg shadow p-6">
        <h3 class="text-lg font-semibold text-blue-600">Merchants</h3>
        <p class="mt-2 text-sm text-gray-600">Source products, post purchase requests, and track incoming shipments.</p>
    </div>
    <div class="bg-white rounded-lg shadow p-6">
        <h3 class="text-lg font-semibold text-teal-600">Suppliers</h3>
        <p class="mt-2 text-sm text-gray-600">List offers, manage your catalog, and reach buyers across the marketplace.</p>
    </div>
    <div class="bg-white rounded-lg shadow p-6">
        <h3 class="text-lg font-semibold text-orange-600">Shipping</h3>
        <p class="mt-2 text-sm text-gray-600">Publish shipping services and manage deliveries end to end.</p>
    </div>
</div>
{{end}}`,

	"login": `{{define "content"}}
<div class="flex items-center justify-center py-12 px-4">
    <div class="max-w-md w-full space-y-8">
        <div>
            <h2 class="mt-6 text-center text-3xl font-extrabold text-gray-900">Sign in to Tijara</h2>
        </div>
        {{if .Error}}
        <div class="rounded-md bg-red-50 p-4">
            <div class="text-sm text-red-700">{{.Error}}</div>
        </div>
        {{end}}
        <form class="mt-8 space-y-6" action="/login" method="POST">
            <div class="rounded-md shadow-sm -space-y-px">
                <div>
                    <label for="email" class="sr-only">Email</label>
                    <input id="email" name="email" type="email" required value="{{.Email}}"
                           class="appearance-none rounded-none relative block w-full px-3 py-2 border border-gray-300 placeholder-gray-500 text-gray-900 rounded-t-md focus:outline-none focus:ring-blue-500 focus:border-blue-500 focus:z-10 sm:text-sm"
                           placeholder="Email address">
                </div>
                <div>
                    <label for="password" class="sr-only">Password</label>
                    <input id="password" name="password" type="password" required
                           class="appearance-none rounded-none relative block w-full px-3 py-2 border border-gray-300 placeholder-gray-500 text-gray-900 rounded-b-md focus:outline-none focus:ring-blue-500 focus:border-blue-500 focus:z-10 sm:text-sm"
                           placeholder="Password">
                </div>
            </div>
            <div>
                <button type="submit"
                        class="group relative w-full flex justify-center py-2 px-4 border border-transparent text-sm font-medium rounded-md text-white bg-blue-600 hover:bg-blue-700 focus:outline-none focus:ring-2 focus:ring-offset-2 focus:ring-blue-500">
                    Sign in
                </button>
            </div>
        </form>
        <p class="text-center text-sm text-gray-600">
            No account? <a href="/register" class="text-blue-600 hover:text-blue-500">Register</a>
        </p>
    </div>
</div>
{{end}}`,

	"register": `{{define "content"}}
<div class="flex items-center justify-center py-12 px-4">
    <div class="max-w-md w-full space-y-8">
        <div>
            <h2 class="mt-6 text-center text-3xl font-extrabold text-gray-900">Create your account</h2>
        </div>
        {{if .Error}}
        <div class="rounded-md bg-red-50 p-4">
            <div class="text-sm text-red-700">{{.Error}}</div>
        </div>
        {{end}}
        <form class="mt-8 space-y-4" action="/register" method="POST">
            <input name="name" type="text" required placeholder="Full name"
                   class="block w-full px-3 py-2 border border-gray-300 rounded-md text-sm focus:ring-blue-500 focus:border-blue-500">
            <input name="email" type="email" required placeholder="Email address"
                   class="block w-full px-3 py-2 border border-gray-300 rounded-md text-sm focus:ring-blue-500 focus:border-blue-500">
            <input name="password" type="password" required minlength="8" placeholder="Password (8+ characters)"
                   class="block w-full px-3 py-2 border border-gray-300 rounded-md text-sm focus:ring-blue-500 focus:border-blue-500">
            <select name="role" class="block w-full px-3 py-2 border border-gray-300 rounded-md text-sm focus:ring-blue-500 focus:border-blue-500">
                <option value="merchant">Merchant</option>
                <option value="supplier">Supplier</option>
                <option value="shipping_company">Shipping Company</option>
            </select>
            <input name="phone" type="tel" placeholder="Phone (optional)"
                   class="block w-full px-3 py-2 border border-gray-300 rounded-md text-sm focus:ring-blue-500 focus:border-blue-500">
            <input name="company" type="text" placeholder="Company name (optional)"
                   class="block w-full px-3 py-2 border border-gray-300 rounded-md text-sm focus:ring-blue-500 focus:border-blue-500">
            <button type="submit"
                    class="w-full flex justify-center py-2 px-4 border border-transparent text-sm font-medium rounded-md text-white bg-blue-600 hover:bg-blue-700 focus:outline-none focus:ring-2 focus:ring-offset-2 focus:ring-blue-500">
                Create account
            </button>
        </form>
    </div>
</div>
{{end}}`,

	"dashboard": `{{define "content"}}
<div class="px-4">
    <h1 class="text-2xl font-bold text-gray-900">Welcome back, {{.User.Name}}</h1>
    <p class="mt-1 text-sm text-gray-500">{{roleLabel .User.Role}}{{if .User.CompanyName}} at {{.User.CompanyName}}{{end}}</p>

    <div class="mt-6 grid grid-cols-2 md:grid-cols-4 gap-4">
        <div class="bg-white rounded-lg shadow p-5">
            <div class="text-sm text-gray-500">Orders</div>
            <div class="mt-1 text-3xl font-semibold text-gray-900">{{.Stats.TotalOrders}}</div>
        </div>
        <div class="bg-white rounded-lg shadow p-5">
            <div class="text-sm text-gray-500">Revenue</div>
            <div class="mt-1 text-3xl font-semibold text-gray-900">{{money .Stats.Revenue}}</div>
        </div>
        <div class="bg-white rounded-lg shadow p-5">
            <div class="text-sm text-gray-500">Shipments</div>
            <div class="mt-1 text-3xl font-semibold text-gray-900">{{.Stats.TotalShipments}}</div>
        </div>
        <div class="bg-white rounded-lg shadow p-5">
            <div class="text-sm text-gray-500">Products</div>
            <div class="mt-1 text-3xl font-semibold text-gray-900">{{.Stats.TotalProducts}}</div>
        </div>
    </div>
</div>
{{end}}`,

	"products": `{{define "content"}}
<div class="px-4">
    <h1 class="text-2xl font-bold text-gray-900">Products <span class="text-sm font-normal text-gray-500">({{.Total}})</span></h1>
    <div class="mt-6 bg-white shadow rounded-lg overflow-hidden">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Name</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Category</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Price</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Stock</th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Products}}
                <tr>
                    <td class="px-6 py-4 text-sm font-medium text-gray-900">{{truncate .Name 60}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{.Category}}</td>
                    <td class="px-6 py-4 text-sm text-gray-900">{{money .Price}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{.StockQuantity}}</td>
                </tr>
                {{else}}
                <tr><td colspan="4" class="px-6 py-8 text-center text-sm text-gray-500">No products found.</td></tr>
                {{end}}
            </tbody>
        </table>
    </div>
</div>
{{end}}`,

	"shipments": `{{define "content"}}
<div class="px-4">
    <h1 class="text-2xl font-bold text-gray-900">Shipments <span class="text-sm font-normal text-gray-500">({{.Total}})</span></h1>
    <div class="mt-6 bg-white shadow rounded-lg overflow-hidden">
        <table class="min-w-full divide-y divide-gray-200">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Tracking</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Status</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Cost</th>
                    <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Created</th>
                </tr>
            </thead>
            <tbody class="divide-y divide-gray-200">
                {{range .Shipments}}
                <tr>
                    <td class="px-6 py-4 text-sm font-medium text-gray-900">{{.TrackingNumber}}</td>
                    <td class="px-6 py-4 text-sm"><span class="px-2 py-1 rounded-full text-xs {{statusColor .Status}}">{{.Status}}</span></td>
                    <td class="px-6 py-4 text-sm text-gray-900">{{money .EstimatedCost}}</td>
                    <td class="px-6 py-4 text-sm text-gray-500">{{relTime .CreatedAt}}</td>
                </tr>
                {{else}}
                <tr><td colspan="4" class="px-6 py-8 text-center text-sm text-gray-500">No shipments found.</td></tr>
                {{end}}
            </tbody>
        </table>
    </div>
</div>
{{end}}`,

	"market": `{{define "content"}}
<div class="px-4 space-y-8">
    <h1 class="text-2xl font-bold text-gray-900">Marketplace</h1>

    <section>
        <h2 class="text-lg font-semibold text-gray-800">Supplier offers</h2>
        <div class="mt-3 grid grid-cols-1 md:grid-cols-3 gap-4">
            {{range .Offers}}
            <div class="bg-white rounded-lg shadow p-4">
                <div class="font-medium text-gray-900">{{truncate .Title 50}}</div>
                <div class="mt-1 text-sm text-gray-500">{{truncate .Description 100}}</div>
                <div class="mt-2 text-sm font-semibold text-teal-600">{{money .Price}}</div>
            </div>
            {{else}}
            <p class="text-sm text-gray-500">No offers available.</p>
            {{end}}
        </div>
    </section>

    <section>
        <h2 class="text-lg font-semibold text-gray-800">Merchant requests</h2>
        <div class="mt-3 grid grid-cols-1 md:grid-cols-3 gap-4">
            {{range .Requests}}
            <div class="bg-white rounded-lg shadow p-4">
                <div class="font-medium text-gray-900">{{truncate .Title 50}}</div>
                <div class="mt-1 text-sm text-gray-500">{{truncate .Description 100}}</div>
                <div class="mt-2 text-sm text-gray-500">Qty: {{.Quantity}}</div>
            </div>
            {{else}}
            <p class="text-sm text-gray-500">No requests available.</p>
            {{end}}
        </div>
    </section>

    <section>
        <h2 class="text-lg font-semibold text-gray-800">Shipping services</h2>
        <div class="mt-3 grid grid-cols-1 md:grid-cols-3 gap-4">
            {{range .Services}}
            <div class="bg-white rounded-lg shadow p-4">
                <div class="font-medium text-gray-900">{{truncate .Title 50}}</div>
                <div class="mt-1 text-sm text-gray-500">{{.CoverageArea}}</div>
                <div class="mt-2 text-sm font-semibold text-orange-600">from {{money .BasePrice}}</div>
            </div>
            {{else}}
            <p class="text-sm text-gray-500">No services available.</p>
            {{end}}
        </div>
    </section>

    <section>
        <h2 class="text-lg font-semibold text-gray-800">Exhibitions</h2>
        <div class="mt-3 grid grid-cols-1 md:grid-cols-3 gap-4">
            {{range .Exhibitions}}
            <div class="bg-white rounded-lg shadow p-4">
                <div class="font-medium text-gray-900">{{truncate .Name 50}}</div>
                <div class="mt-1 text-sm text-gray-500">{{.Location}}</div>
                <div class="mt-2 text-sm text-gray-500">{{formatTime .StartDate}}</div>
            </div>
            {{else}}
            <p class="text-sm text-gray-500">No exhibitions scheduled.</p>
            {{end}}
        </div>
    </section>
</div>
{{end}}`,

	"notifications": `{{define "content"}}
<div class="px-4">
    <h1 class="text-2xl font-bold text-gray-900">Notifications
        {{if gt .Unread 0}}<span class="ml-2 bg-red-500 text-white text-sm rounded-full px-2 py-0.5">{{.Unread}}</span>{{end}}
    </h1>
    <div class="mt-6 bg-white shadow rounded-lg divide-y divide-gray-200">
        {{range .Notifications}}
        <div class="px-6 py-4 {{if not .Read}}bg-blue-50{{end}}">
            <div class="text-sm font-medium text-gray-900">{{.Title}}</div>
            <div class="mt-1 text-sm text-gray-500">{{.Body}}</div>
            <div class="mt-1 text-xs text-gray-400">{{relTime .CreatedAt}}</div>
        </div>
        {{else}}
        <div class="px-6 py-8 text-center text-sm text-gray-500">No notifications.</div>
        {{end}}
    </div>
</div>
{{end}}`,

	"error": `{{define "content"}}
<div class="px-4 py-16 text-center">
    <h1 class="text-2xl font-bold text-gray-900">{{.Title}}</h1>
    <p class="mt-2 text-sm text-gray-500">{{.Message}}</p>
    <a href="/" class="mt-6 inline-block text-sm text-blue-600 hover:text-blue-500">Back to dashboard</a>
</div>
{{end}}`,
}
