package extract

// discoveryPrompt asks for every development on a page. Verbs are
// deliberately strict: the model must not infer fields without page
// evidence, and closed-vocabulary fields name their exact values.
const discoveryPrompt = `Analyze this webpage content and extract ALL Build to Rent (BTR) developments mentioned.

For each development found, return a JSON object with these fields (only include fields with explicit evidence):
- "name": The development's name (string, REQUIRED)
- "operator_name": The company operating/managing the development (string)
- "asset_owner_name": The company that owns the development/asset (string)
- "number_of_units": Total residential units (integer)
- "status": MUST be one of: "In Planning", "Under Construction", "Operational"
- "postcode": UK postcode (string)
- "area": City or town name (string)
- "region": MUST be exactly one of: "London", "South East", "South West", "East of England", "East Midlands", "West Midlands", "North West", "North East", "Yorkshire and The Humber", "Scotland", "Wales", "Northern Ireland"
- "completion_date": Expected/actual completion date in YYYY-MM-DD format if possible, or YYYY if only year known
- "description": Brief factual description, max 80 words (string)
- "website_url": The development's own website URL if mentioned (string)
- "development_type": "Multifamily" (apartments/flats) or "Single Family" (houses)

Return a JSON object with a "developments" array:
{
  "developments": [
    {"name": "The Quarters", "area": "Manchester", "number_of_units": 350, "operator_name": "Grainger", "status": "Under Construction", ...},
    {"name": "Alder Wharf", "area": "London", ...}
  ]
}

If no BTR developments are found, return: {"developments": []}

IMPORTANT:
- Only include actual named BTR (Build to Rent) developments. Do NOT include generic mentions of BTR as a concept.
- Each development MUST have a name. Skip unnamed references.
- Do NOT guess or infer fields without evidence on the page.

Return ONLY valid JSON. No explanation text.

Source URL: %s

Webpage content:
%s`

// verifyPrompt extracts fields for one known listing and asks for a
// confidence tier alongside every field.
const verifyPrompt = `Analyze this webpage content and extract information about the BTR (Build to Rent) development called "%s" in %s.

Return a JSON object with ONLY the fields you find explicit evidence for. Do not guess or infer values.

Fields to extract:
- "name": The development's current name (string)
- "operator_name": The company operating/managing the development (string)
- "asset_owner_name": The company that owns the development/asset (string, may differ from operator)
- "number_of_units": Total number of residential units (integer)
- "status": One of "In Planning", "Under Construction", or "Operational" (string)
- "postcode": UK postcode (string)
- "area": City or town (string)
- "region": UK region, MUST be exactly one of: "London", "South East", "South West", "East of England", "East Midlands", "West Midlands", "North West", "North East", "Yorkshire and The Humber", "Scotland", "Wales", "Northern Ireland" (string)
- "completion_date": Expected or actual completion date (string, ISO format YYYY-MM-DD if possible)
- "description": A brief description of the development (string, max 200 words)
- "website_url": The development's website URL (string)
- "development_type": "Multifamily" or "Single Family" (string)

For each field you include, also add a confidence field like "name_confidence": "HIGH" / "MEDIUM" / "LOW".
- HIGH: explicitly stated on the page
- MEDIUM: strongly implied or partially stated
- LOW: inferred from context

Return ONLY valid JSON. No explanation text.

Webpage content:
%s`
