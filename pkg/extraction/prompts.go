package extraction

const topicProposalPrompt = `You are an assistant that organizes course material for instructors.

Below are excerpts from course material for a single session. Identify the
distinct topics the material covers. Return between 3 and 12 topics.

Rules:
- Each topic title is short (2 to 6 words) and specific to this material.
- Do not invent topics the excerpts do not support.
- Respond with ONLY a JSON array of strings, no prose, no markdown fences.

Example response:
["Cell Membrane Structure", "Osmosis and Diffusion", "Active Transport"]

Course material:
%s`

const knowledgeSynthesisPrompt = `You are an assistant that builds a study knowledge base for instructors.

Using ONLY the course material below, produce knowledge for the topic "%s".

Respond with ONLY a JSON object, no prose, no markdown fences, in exactly
this shape:
{
  "summary": "3-6 sentence summary of the topic as covered by the material",
  "concepts": [{"term": "...", "definition": "...", "importance": "..."}],
  "objectives": ["learning objective the student should achieve", "..."],
  "qa_pairs": [{"question": "...", "answer": "...", "difficulty": "easy|medium|hard"}]
}

Rules:
- Every statement must be grounded in the material. Do not add outside facts.
- Provide 3 to 8 concepts, 2 to 5 objectives, and 3 to 6 qa_pairs.
- Difficulty reflects how deeply the material covers the answer.

Course material:
%s`
