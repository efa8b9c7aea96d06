package prompt

import (
	"fmt"

	"github.com/Spyyy004/designbuddy/internal/completion"
)

// caseStudyTemplate is the fixed instruction block sent with every request.
// Only the two %s slots are user-controlled.
const caseStudyTemplate = `Please create a detailed design case study using the following information:

1. Designer's thought process: %s

2. Achieved results: %s

3. Design screenshots: Attached in the prompt

In your case study, please include:

- An introduction explaining the project's context and goals
- A breakdown of the design problem and challenges faced
- An analysis of the designer's approach and methodology
- A description of the design process, including any iterations or pivotal decisions
- An explanation of how the final design addresses the initial problems
- A visual analysis of the design, referencing the provided image URLs
- A summary of the results and impact of the design
- Any lessons learned or insights gained from the project

Please structure the case study in a clear, logical flow, using headings and subheadings where appropriate. Aim for a comprehensive yet engaging narrative that showcases both the designer's process and the effectiveness of the final product. Also, write a section on what is present in the images.`

// Compose builds the chat messages for one generation request: the fixed
// template with both text slots interpolated, followed by one image part per
// URL in upload order. Pure; empty texts are legal and simply thin the prompt.
func Compose(thoughtProcess, resultAchieved string, imageURLs []string) []completion.Message {
	parts := make([]completion.ContentPart, 0, len(imageURLs)+1)
	parts = append(parts, completion.TextPart(fmt.Sprintf(caseStudyTemplate, thoughtProcess, resultAchieved)))
	for _, url := range imageURLs {
		parts = append(parts, completion.ImagePart(url))
	}

	return []completion.Message{
		{Role: "user", Content: parts},
	}
}
