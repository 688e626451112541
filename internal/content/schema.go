package content

// Defaults returns the full default ContentDocument. This is the canonical
// schema: every field the site dereferences has a literal default here, and
// it is re-merged over whatever is persisted on every load so documents
// written by older schema versions still resolve newly added fields.
//
// Sub-item records (card1..card3, stat1..stat3, step1..step3) are fixed
// cardinality; the site always renders exactly three.
func Defaults() Document {
	return Document{
		"hero": map[string]any{
			"title":         "20 Years of Expertise, Trusted by Major Construction Companies",
			"titleColor":    "#ffffff",
			"titleSize":     "60",
			"subtitle":      "Eco-Friendly NST Method - Korea's Leading Technology for New House Syndrome. We create spaces where you can breathe freely.",
			"subtitleColor": "#e2e8f0",
			"subtitleSize":  "20",
			"yearText":      "Since 2009",
			"badgeText":     "Premium Air Quality Solution",
			"bgImage":       "https://images.unsplash.com/photo-1758548157747-285c7012db5b?auto=format&fit=crop&q=80&w=1080",
			"stat1Value":    "2025 Winner",
			"stat1Label":    "Korea Environmental Grand Prize",
			"stat2Value":    "1,018+",
			"stat2Label":    "Apartment Complexes Completed",
			"stat3Value":    "Verified",
			"stat3Label":    "Scientifically Proven Results",
		},
		"whyNST": map[string]any{
			"sectionTitle": "Why Choose NST Method?",
			"titleColor":   "#05668D",
			"desc":         "We combine advanced technology with eco-friendly materials to provide the safest indoor environment.",
			"cardHeight":   "400",
			"card1": map[string]any{
				"title": "One-Stop System",
				"desc":  "Complete solution from materials manufacturing to professional installation.",
				"image": "https://images.unsplash.com/photo-1760970237216-17a474403b5c?auto=format&fit=crop&q=80&w=800",
			},
			"card2": map[string]any{
				"title": "Major Partnerships",
				"desc":  "Trusted partner for 1,018+ verified projects with top construction firms.",
				"image": "https://images.unsplash.com/photo-1653016380323-a4496cbe3cf0?auto=format&fit=crop&q=80&w=800",
			},
			"card3": map[string]any{
				"title": "20 Years Experience",
				"desc":  "Customized 3-step process refined over two decades of field experience.",
				"image": "https://images.unsplash.com/photo-1588665306984-d5c6f62224aa?auto=format&fit=crop&q=80&w=800",
			},
		},
		"results": map[string]any{
			"bgColor": "#05668D",
			"stat1":   map[string]any{"value": "1,018+", "label": "Complexes", "sub": "Completed Projects"},
			"stat2":   map[string]any{"value": "50+", "label": "Teams", "sub": "Professional Experts"},
			"stat3":   map[string]any{"value": "20", "label": "Years", "sub": "Field Experience"},
		},
		"process": map[string]any{
			"title": "The NST 3-Step Process",
			"desc":  "A scientifically engineered method to ensure your home is safe from day one.",
			"step1": map[string]any{
				"code":   "NST-S100",
				"title":  "Decomposition",
				"desc":   "Removal of construction residue, mold, and harmful bacteria using our proprietary active solution.",
				"detail": "Penetrates deep into porous materials to break down pollutants at the molecular level.",
				"image":  "https://images.unsplash.com/photo-1621905251189-08b45d6a269e?auto=format&fit=crop&q=80&w=1000",
			},
			"step2": map[string]any{
				"code":   "NST-S200",
				"title":  "Blocking",
				"desc":   "Sealing of exposed surfaces to prevent the emission of Formaldehyde and Volatile Organic Compounds (VOCs).",
				"detail": "Forms a semi-permanent barrier that allows moisture regulation while blocking toxins.",
				"image":  "https://images.unsplash.com/photo-1584622650111-993a426fbf0a?auto=format&fit=crop&q=80&w=1000",
			},
			"step3": map[string]any{
				"code":   "NST-F100",
				"title":  "Adsorption",
				"desc":   "Final air treatment using advanced photocatalytic coating to purify indoor air continuously.",
				"detail": "Reacts with indoor light to decompose airborne pollutants and eliminate odors.",
				"image":  "https://images.unsplash.com/photo-1527011046414-4781f1f94f8c?auto=format&fit=crop&q=80&w=1000",
			},
		},
		"scientific": map[string]any{
			"awardTitle": "Korea Environmental Grand Prize",
			"awardDesc":  "Recognized for excellence in indoor air quality improvement technology.",
			"certTitle":  "Certified Excellence",
			"certBody":   "Ministry of Environment, Republic of Korea",
			"mainTitle":  "90%+ Reduction in Harmful Substances",
			"mainDesc":   "Our method is scientifically proven to drastically reduce harmful VOCs and Formaldehyde, ensuring your indoor air is as clean as nature intended.",
		},
		"portfolio": map[string]any{
			"title": "Our Portfolio",
			"desc":  "Exploring our successful projects across the nation.",
			"projects": []any{
				map[string]any{"id": 1, "title": "Gangnam Prugio Summit", "category": "Seoul", "year": "2024", "builder": "Daewoo E&C", "img": "https://images.unsplash.com/photo-1600607686527-6fb886090705?auto=format&fit=crop&q=80&w=800"},
				map[string]any{"id": 2, "title": "Busan LCT The Sharp", "category": "Busan", "year": "2023", "builder": "POSCO E&C", "img": "https://images.unsplash.com/photo-1600585154526-990dced4db0d?auto=format&fit=crop&q=80&w=800"},
				map[string]any{"id": 3, "title": "Raemian One Bailey", "category": "Seoul", "year": "2024", "builder": "Samsung C&T", "img": "https://images.unsplash.com/photo-1600566753086-00f18fb6b3ea?auto=format&fit=crop&q=80&w=800"},
				map[string]any{"id": 4, "title": "Hillstate Ijin Bay City", "category": "Busan", "year": "2023", "builder": "Hyundai E&C", "img": "https://images.unsplash.com/photo-1600210492493-0946911123ea?auto=format&fit=crop&q=80&w=800"},
				map[string]any{"id": 5, "title": "Songdo Xi Crystal", "category": "Incheon", "year": "2022", "builder": "GS E&C", "img": "https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?auto=format&fit=crop&q=80&w=800"},
				map[string]any{"id": 6, "title": "Acroriver Park", "category": "Seoul", "year": "2023", "builder": "DL E&C", "img": "https://images.unsplash.com/photo-1600566753190-17f0baa2a6c3?auto=format&fit=crop&q=80&w=800"},
			},
		},
		"contact": map[string]any{
			"title":   "Contact Us",
			"desc":    "Ready to create a healthier environment? Reach out to our expert team for a consultation.",
			"phone":   "043-222-2322",
			"email":   "info@knst.co.kr",
			"kakao":   "@NST",
			"address": "134 Gongdan-ro, Heungdeok-gu, Cheongju, Chungbuk",
			"bgImage": "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?auto=format&fit=crop&q=80&w=2000",
		},
		"theme": map[string]any{
			"primaryColor":   "#05668D",
			"secondaryColor": "#00A896",
		},
	}
}

// SectionInfo names one top-level section for the admin surface.
type SectionInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Sections lists the canonical sections in display order. The admin UI
// iterates this instead of hard-coding per-section markup.
func Sections() []SectionInfo {
	return []SectionInfo{
		{ID: "hero", Name: "Hero"},
		{ID: "whyNST", Name: "Why NST"},
		{ID: "results", Name: "Results"},
		{ID: "process", Name: "Process"},
		{ID: "scientific", Name: "Scientific"},
		{ID: "portfolio", Name: "Portfolio"},
		{ID: "contact", Name: "Contact"},
		{ID: "theme", Name: "Theme"},
	}
}
