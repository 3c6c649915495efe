package config

const (
	//? These paths must match the paths in the embed directive

	StaticLocalDir = "static"
	StaticUrlPath  = "/" + StaticLocalDir + "/"

	BlogUrlPath      = "/blog/"
	PortfolioUrlPath = "/portofolio/"
	ProductsUrlPath  = "/products"

	AdminUrlPath       = "/admin"
	AdminLoginUrlPath  = "/admin/login"
	AdminLogoutUrlPath = "/admin/logout"

	TemplatesLocalDir = "templates"

	TemplateLayout    = "layout.html"
	TemplateIndex     = "index.html"
	TemplateBlog      = "blog.html"
	TemplatePost      = "post.html"
	TemplatePortfolio = "portfolio.html"
	TemplateItem      = "item.html"
	TemplateProducts  = "products.html"
	TemplateAdmin     = "admin.html"
	TemplateLogin     = "login.html"
)
