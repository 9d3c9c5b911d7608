package models

const (
	// DocumentID is the fixed identifier of the content document.
	DocumentID string = "content"

	// DocumentCollection is the collection (or table prefix) holding the document.
	DocumentCollection string = "site"
)

const defaultAboutDescription string = "I'm a passionate Electronics Engineer with a diverse background in embedded systems, web development, digital marketing, and IT service. I thrive on learning, building, and leading, with a strong focus on practical innovation and real-world impact.\n\n" +
	"Currently, I'm working at Genex (Grameenphone Digital), where I handle live chat and email-based customer support, gaining hands-on experience in communication, customer service, and IT operations.\n\n" +
	"My journey into web development began with a curiosity to bring ideas to life on the internet. I started by building full-stack applications with a clear separation between the frontend and backend for better structure and scalability."

// DefaultChangelog is the historical release list used when no document exists.
func DefaultChangelog() []ChangelogItem {
	return []ChangelogItem{
		{
			Date:    "2023-04-15",
			Version: "1.1.0",
			Title:   "Performance & Reliability Improvements",
			Changes: []string{
				"Fixed Firebase permissions issues",
				"Added image loading fallbacks for better reliability",
				"Improved error handling throughout the application",
				"Optimized images for faster loading",
				"Added CORS support for better API communication",
			},
		},
		{
			Date:    "2023-04-10",
			Version: "1.0.0",
			Title:   "Initial Release",
			Changes: []string{
				"Launched portfolio website",
				"Added hero section with image carousel",
				"Created about section with skills",
				"Implemented projects showcase",
				"Added contact form functionality",
			},
		},
	}
}

func DefaultGallery() *Gallery {
	return &Gallery{
		Title:       "Photo Gallery",
		Description: "A collection of moments and memories captured throughout my journey.",
		Images:      []string{},
	}
}

// Default returns the fully populated fallback document. Every call returns
// freshly allocated slices so callers may mutate the result.
func Default() SiteContent {
	github := "#"

	return SiteContent{
		Hero: Hero{
			Title:      "Shihab Hossain",
			Subtitle:   "Electronics Engineer & Web Developer",
			ButtonText: "View My Work",
			ButtonLink: "#projects",
			Images:     []string{},
		},
		About: About{
			Title:       "About Me",
			Description: defaultAboutDescription,
			Photo:       "",
			Skills:      []string{"Electronics Engineering", "Web Development", "IoT", "Digital Marketing"},
		},
		Experiences: []Experience{
			{
				ID:          "1",
				Company:     "Genex (Grameenphone Digital)",
				Position:    "Customer Support Specialist",
				Duration:    "2023 - Present",
				Description: "Handle live chat and email-based customer support, gaining hands-on experience in communication, customer service, and IT operations.",
			},
			{
				ID:          "2",
				Company:     "Mirro Tech",
				Position:    "Founder",
				Duration:    "2021 - 2023",
				Description: "Led projects involving digital subscription products like Canva and Netflix. Experience in client handling, digital product delivery, and team coordination.",
			},
		},
		Gallery: DefaultGallery(),
		Projects: []Project{
			{
				ID:          "1",
				Title:       "CSV Search Tool",
				Description: "Developed a CSV search tool with clean UI, efficient search logic, and smooth user interaction.",
				Image:       "",
				Tags:        []string{"React", "Node.js", "CSV"},
				Link:        "#",
				Github:      &github,
			},
			{
				ID:          "2",
				Title:       "IoT Weather Station",
				Description: "Built an IoT-based weather station using Arduino and ESP8266 with Blynk platform integration.",
				Image:       "",
				Tags:        []string{"IoT", "Arduino", "ESP8266", "Blynk"},
				Link:        "#",
			},
		},
		Socials: []Social{
			{ID: "1", Platform: "GitHub", Link: "https://github.com/SHIHABSSS1", Icon: IconGithub},
			{ID: "2", Platform: "LinkedIn", Link: "#", Icon: IconLinkedin},
		},
		Contact: Contact{
			Email:   "shihabhossain596@gmail.com",
			Phone:   "01745368299",
			Address: "Bangladesh",
		},
		Changelog: DefaultChangelog(),
	}
}
