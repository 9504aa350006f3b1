// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and projection types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateMemeRequest: memeUrl, ownerId, ownerName, title
  - InteractionRequest: voterId

# Response Types

Types for JSON responses:

  - CreateMemeResponse: id
  - InteractionResponse: likes or votes (whichever counter was touched)
  - OwnerExistsResponse: exists
  - VoterStatusResponse: liked, voted
  - MemeSummary: the public listing projection
  - ErrorResponse: error, message

MemeSummary never includes voter-set membership; the only way to learn
whether a given voter interacted with a meme is the dedicated
GET /memes/{id}/voters/{voterID} endpoint.
*/
package models
