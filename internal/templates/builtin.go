package templates

import "resumecanvas/internal/canvas"

// builtinTemplates returns the starter templates shipped with the service.
// Coordinates assume a 850x1100 canvas, the editor's letter-page default.
func builtinTemplates() []Template {
	return []Template{classicTemplate(), modernTemplate()}
}

func classicTemplate() Template {
	return Template{
		ID:          "classic",
		Name:        "Classic",
		Description: "Single column, centered header, ATS-safe fonts.",
		Elements: []canvas.Element{
			{
				ID: "name", Content: "{name}",
				X: 225, Y: 40, Width: 400, Height: 44,
				Style:    canvas.Style{FontSize: "32px", FontWeight: "bold", FontFamily: "Georgia", TextAlign: "center"},
				ATSField: canvas.FieldName,
			},
			{
				ID: "contact", Content: "{email} | {phone} | {location}",
				X: 175, Y: 92, Width: 500, Height: 20,
				Style:    canvas.Style{FontSize: "12px", FontFamily: "Georgia", TextAlign: "center"},
				ATSField: canvas.FieldContact,
			},
			{
				ID: "summary", Content: "{summary}",
				X: 60, Y: 140, Width: 730, Height: 60,
				Style: canvas.Style{FontSize: "13px", FontFamily: "Georgia", LineHeight: "1.4"},
			},
			{
				ID: "exp-placeholder", Content: "Add your roles here",
				X: 60, Y: 260, Width: 730, Height: 24,
				Style:         canvas.Style{FontSize: "13px", FontFamily: "Georgia"},
				ParentSection: "experience",
			},
			{
				ID: "edu-placeholder", Content: "Add your education here",
				X: 60, Y: 560, Width: 730, Height: 24,
				Style:         canvas.Style{FontSize: "13px", FontFamily: "Georgia"},
				ParentSection: "education",
			},
			{
				ID: "skills-placeholder", Content: "Add your skills here",
				X: 60, Y: 760, Width: 730, Height: 24,
				Style:         canvas.Style{FontSize: "13px", FontFamily: "Georgia"},
				ParentSection: "skills",
			},
		},
		Sections: []canvas.Section{
			{
				ID: "experience", Title: "Experience",
				X: 60, Y: 230, Width: 730, Height: 300,
				ContentType: canvas.ContentListSections,
			},
			{
				ID: "education", Title: "Education",
				X: 60, Y: 530, Width: 730, Height: 200,
				ContentType: canvas.ContentListSections,
			},
			{
				ID: "skills", Title: "Skills",
				X: 60, Y: 730, Width: 730, Height: 120,
				ContentType: canvas.ContentListItems,
			},
		},
	}
}

func modernTemplate() Template {
	return Template{
		ID:          "modern",
		Name:        "Modern",
		Description: "Left-aligned header with an accent color and a skills strip.",
		Elements: []canvas.Element{
			{
				ID: "name", Content: "{name}",
				X: 60, Y: 40, Width: 500, Height: 40,
				Style:    canvas.Style{FontSize: "28px", FontWeight: "bold", FontFamily: "Helvetica", Color: "#1a365d"},
				ATSField: canvas.FieldName,
			},
			{
				ID: "email", Content: "{email}",
				X: 60, Y: 88, Width: 240, Height: 18,
				Style:    canvas.Style{FontSize: "12px", FontFamily: "Helvetica"},
				ATSField: canvas.FieldEmail,
			},
			{
				ID: "phone", Content: "{phone}",
				X: 320, Y: 88, Width: 160, Height: 18,
				Style:    canvas.Style{FontSize: "12px", FontFamily: "Helvetica"},
				ATSField: canvas.FieldPhone,
			},
			{
				ID: "linkedin", Content: "{linkedin}",
				X: 500, Y: 88, Width: 220, Height: 18,
				Style:    canvas.Style{FontSize: "12px", FontFamily: "Helvetica"},
				ATSField: canvas.FieldLinkedIn,
			},
			{
				ID: "summary", Content: "{summary}",
				X: 60, Y: 130, Width: 730, Height: 60,
				Style: canvas.Style{FontSize: "13px", FontFamily: "Helvetica", LineHeight: "1.5"},
			},
			{
				ID: "skills-placeholder", Content: "Add your skills here",
				X: 60, Y: 250, Width: 730, Height: 20,
				Style:         canvas.Style{FontSize: "12px", FontFamily: "Helvetica"},
				ParentSection: "skills",
			},
			{
				ID: "exp-placeholder", Content: "Add your roles here",
				X: 60, Y: 360, Width: 730, Height: 24,
				Style:         canvas.Style{FontSize: "13px", FontFamily: "Helvetica"},
				ParentSection: "experience",
			},
			{
				ID: "edu-placeholder", Content: "Add your education here",
				X: 60, Y: 720, Width: 730, Height: 24,
				Style:         canvas.Style{FontSize: "13px", FontFamily: "Helvetica"},
				ParentSection: "education",
			},
		},
		Sections: []canvas.Section{
			{
				ID: "skills", Title: "Skills",
				X: 60, Y: 220, Width: 730, Height: 80,
				ContentType: canvas.ContentListItems,
				Direction:   canvas.DirectionHorizontal,
			},
			{
				ID: "experience", Title: "Experience",
				X: 60, Y: 330, Width: 730, Height: 360,
				ContentType: canvas.ContentListSections,
			},
			{
				ID: "education", Title: "Education",
				X: 60, Y: 690, Width: 730, Height: 160,
				ContentType: canvas.ContentListSections,
			},
		},
	}
}
