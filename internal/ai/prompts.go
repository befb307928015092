package ai

const scoreCVPrompt = `You are a professional resume reviewer. Assess the resume below.

Respond with a single JSON object:
{
  "overall": <0-100 integer>,
  "section_scores": {"summary": <0-100>, "experience": <0-100>, "education": <0-100>, "skills": <0-100>},
  "strengths": [<up to 5 short strings>],
  "improvements": [<up to 5 short, actionable strings>]
}

Resume JSON:
%s`

const extractPrompt = `You are a resume parser. Extract structured resume data from the free text below.

Respond with a single JSON object using exactly these keys (omit what the text does not contain):
{
  "personalInfo": {"fullName": "", "email": "", "phone": "", "location": "", "linkedin": "", "website": "", "github": "", "title": ""},
  "summary": "",
  "experience": [{"company": "", "position": "", "startDate": "", "endDate": null, "current": false, "description": "", "achievements": []}],
  "education": [{"institution": "", "degree": "", "field": "", "startDate": "", "endDate": null, "current": false, "gpa": "", "description": ""}],
  "skills": [{"name": "", "level": "beginner|intermediate|advanced|expert"}],
  "languages": [{"name": "", "proficiency": "basic|conversational|professional|native"}],
  "certificates": [{"name": "", "issuer": "", "date": "", "url": ""}]
}

Dates use YYYY-MM. Do not invent facts that are not in the text.

Text:
%s`

const matchJobPrompt = `You are a recruiting assistant. Compare the resume against the job description.

Respond with a single JSON object:
{
  "score": <0-100 integer match score>,
  "matching_skills": [<skills present in both>],
  "missing_skills": [<required skills absent from the resume>],
  "recommendations": [<up to 5 short, actionable strings>],
  "summary": "<two sentences on overall fit>"
}

Resume JSON:
%s

Job description:
%s`

const improveTextPrompt = `You are a resume writing coach. Rewrite the text below to be stronger and more concise, keeping every fact intact. The text is used as: %s.

Respond with a single JSON object:
{
  "improved_text": "<the rewrite>",
  "explanation": "<one sentence on what changed and why>",
  "key_changes": [<short strings, one per notable change>]
}

Text:
%s`
