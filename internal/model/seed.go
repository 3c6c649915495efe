package model

// DefaultSeed is the content served when neither the record database nor the
// local snapshot can be read. It is handed to the store at startup so tests
// and deployments can supply their own.
func DefaultSeed() Database {
	return Database{
		Blog: []BlogPost{
			{
				ID:      "blog-1",
				Title:   "Professional IT Solutions for Modern Business",
				Slug:    "professional-it-solutions-modern-business",
				Content: "MutuTech Solutions provides comprehensive IT services including web development, software solutions, and digital transformation for modern businesses looking to thrive in the digital age.",
				Image:   "https://images.unsplash.com/photo-1550745165-9bc0b252726a?w=800&h=600&fit=crop",
				Date:    "28/12/2025",
			},
			{
				ID:      "blog-2",
				Title:   "Digital Transformation Strategies 2025",
				Slug:    "digital-transformation-strategies-2025",
				Content: "Explore the latest digital transformation trends and strategies that can help your business stay competitive in 2025. From cloud migration to AI integration.",
				Image:   "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800&h=600&fit=crop",
				Date:    "25/12/2025",
			},
		},
		Portfolio: []PortfolioItem{
			{
				ID:          "portfolio-1",
				Title:       "Enterprise Resource Planning System",
				Slug:        "enterprise-resource-planning-system",
				Description: "Complete ERP solution for manufacturing company with inventory management, production planning, and financial reporting.",
				Category:    CategoryWebDevelopment,
				Image:       "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800&h=600&fit=crop",
			},
			{
				ID:          "portfolio-2",
				Title:       "E-commerce Platform Development",
				Slug:        "e-commerce-platform-development",
				Description: "Modern e-commerce platform with advanced features including real-time inventory, payment processing, and analytics dashboard.",
				Category:    CategoryWebDevelopment,
				Image:       "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800&h=600&fit=crop",
			},
			{
				ID:          "portfolio-3",
				Title:       "Mobile Banking Application",
				Slug:        "mobile-banking-application",
				Description: "Secure mobile banking application with biometric authentication, real-time transactions, and comprehensive financial management tools.",
				Category:    CategorySoftwareSolutions,
				Image:       "https://images.unsplash.com/photo-1563013544-824ae1b704d3?w=800&h=600&fit=crop",
			},
		},
		Products: []Product{
			{
				ID:    "product-1",
				Name:  "Starter IT Package",
				Price: "Rp 10 Juta",
				Features: []string{
					"Professional Website Development",
					"Basic SEO Optimization",
					"1 Year Maintenance",
					"Email Integration",
					"SSL Certificate",
					"Basic Analytics Setup",
				},
			},
			{
				ID:    "product-2",
				Name:  "Business IT Solutions",
				Price: "Rp 25 Juta",
				Features: []string{
					"Custom Web Application",
					"Advanced SEO & Marketing",
					"2 Year Maintenance & Support",
					"Database Integration",
					"API Development",
					"Performance Optimization",
					"Security Audit",
				},
			},
			{
				ID:    "product-3",
				Name:  "Enterprise IT Package",
				Price: "Rp 50 Juta+",
				Features: []string{
					"Full-Stack Software Development",
					"Enterprise Architecture Design",
					"3 Year Premium Support",
					"Cloud Infrastructure Setup",
					"DevOps Implementation",
					"AI/ML Integration",
					"Custom Analytics Dashboard",
					"24/7 Technical Support",
				},
			},
		},
	}
}
