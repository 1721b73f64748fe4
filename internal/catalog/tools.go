package catalog

// defaultTools is the built-in tool set, one entry per remote tool exposed
// by the platform collaborators. Declaration order matters: it is the order
// tools appear in the planner prompt.
var defaultTools = []ToolSpec{
	// Twitter
	{
		Platform: "twitter", Name: "get_user_info",
		Description: "Fetches detailed user information. rest_id is a numerical ID; if unknown it can be an empty string, but providing it helps accuracy when the screenname is ambiguous.",
		Params: []ParamSpec{
			{Name: "screenname", Type: "string", Required: true},
			{Name: "rest_id", Type: "string", Required: true},
		},
		Returns: "User object containing screenname, rest_id, description, follower/following counts, etc. Useful for getting user IDs.",
	},
	{
		Platform: "twitter", Name: "get_user_timeline",
		Description: "Fetches a user's most recent tweets (their timeline).",
		Params:      []ParamSpec{{Name: "screenname", Type: "string", Required: true}},
		Returns:     "A list of tweets. Each tweet may contain text, tweet ID, author info, etc.",
	},
	{
		Platform: "twitter", Name: "get_user_following",
		Description: "Fetches the list of users a given user is following.",
		Params:      []ParamSpec{{Name: "screenname", Type: "string", Required: true}},
		Returns:     "A list of user objects.",
	},
	{
		Platform: "twitter", Name: "get_user_followers",
		Description: "Fetches the list of followers for a user. blue_verified 1 restricts to blue-verified accounts.",
		Params: []ParamSpec{
			{Name: "screenname", Type: "string", Required: true},
			{Name: "blue_verified", Type: "int", Default: 0},
		},
		Returns: "A list of user objects.",
	},
	{
		Platform: "twitter", Name: "get_tweet_info",
		Description: "Fetches detailed information for a specific tweet.",
		Params:      []ParamSpec{{Name: "tweet_id", Type: "string", Required: true}},
		Returns:     "Tweet object containing text, author details, engagement counts, potentially linked media.",
	},
	{
		Platform: "twitter", Name: "get_affiliates",
		Description: "Fetches affiliates for a given user (e.g. \"x\").",
		Params:      []ParamSpec{{Name: "screenname", Type: "string", Required: true}},
		Returns:     "Information about affiliated accounts or entities.",
	},
	{
		Platform: "twitter", Name: "get_user_media",
		Description: "Fetches media (images, videos) posted by a user.",
		Params:      []ParamSpec{{Name: "screenname", Type: "string", Required: true}},
		Returns:     "A list of media objects or tweets containing media.",
	},
	{
		Platform: "twitter", Name: "get_retweets",
		Description: "Fetches users who retweeted a specific tweet.",
		Params:      []ParamSpec{{Name: "tweet_id", Type: "string", Required: true}},
		Returns:     "A list of user objects who retweeted.",
	},
	{
		Platform: "twitter", Name: "get_trends",
		Description: "Fetches trending topics for a specified country.",
		Params:      []ParamSpec{{Name: "country", Type: "string", Required: true}},
		Returns:     "A list of trending topics.",
	},
	{
		Platform: "twitter", Name: "search_tweets",
		Description: "Searches tweets based on a query. Key for finding tweets by keyword.",
		Params: []ParamSpec{
			{Name: "query", Type: "string", Required: true},
			{Name: "search_type", Type: "string", Default: "Top", Description: "Top or Latest"},
		},
		Returns: "A list of tweets matching the query, each with text, author info (screenname, user_id) and tweet_id.",
	},
	{
		Platform: "twitter", Name: "get_tweet_thread",
		Description: "Fetches a conversation thread starting from a specific tweet.",
		Params:      []ParamSpec{{Name: "tweet_id", Type: "string", Required: true}},
		Returns:     "A list of tweets forming the thread/conversation.",
	},
	{
		Platform: "twitter", Name: "get_latest_replies",
		Description: "Fetches the latest replies to a specific tweet. Useful for getting comments; results include the commenter and the reply content.",
		Params:      []ParamSpec{{Name: "tweet_id", Type: "string", Required: true}},
		Returns:     "A list of reply tweets.",
	},
	{
		Platform: "twitter", Name: "get_list_timeline",
		Description: "Fetches the timeline for a specific Twitter list.",
		Params:      []ParamSpec{{Name: "list_id", Type: "string", Required: true}},
		Returns:     "A list of tweets from that list.",
	},
	{
		Platform: "twitter", Name: "search_communities_latest",
		Description: "Searches community posts (latest) by query.",
		Params:      []ParamSpec{{Name: "query", Type: "string", Required: true}},
		Returns:     "A list of community posts.",
	},
	{
		Platform: "twitter", Name: "search_communities_top",
		Description: "Searches community posts (top) by query.",
		Params:      []ParamSpec{{Name: "query", Type: "string", Required: true}},
		Returns:     "A list of community posts.",
	},
	{
		Platform: "twitter", Name: "search_communities",
		Description: "Searches communities by query.",
		Params:      []ParamSpec{{Name: "query", Type: "string", Required: true}},
		Returns:     "A list of communities.",
	},
	{
		Platform: "twitter", Name: "get_community_timeline",
		Description: "Fetches the timeline for a community.",
		Params:      []ParamSpec{{Name: "community_id", Type: "string", Required: true}},
		Returns:     "A list of posts from that community.",
	},
	{
		Platform: "twitter", Name: "get_list_followers",
		Description: "Fetches followers of a specific Twitter list.",
		Params:      []ParamSpec{{Name: "list_id", Type: "string", Required: true}},
		Returns:     "A list of user objects.",
	},
	{
		Platform: "twitter", Name: "get_list_members",
		Description: "Fetches members of a specific Twitter list.",
		Params:      []ParamSpec{{Name: "list_id", Type: "string", Required: true}},
		Returns:     "A list of user objects.",
	},

	// TikTok
	{
		Platform: "tiktok", Name: "get_user_info",
		Description: "Fetches user information. Provides the secUid needed for many other user-specific calls.",
		Params:      []ParamSpec{{Name: "uniqueId", Type: "string", Required: true}},
		Returns:     "User object including user ID, unique ID, nickname, signature, follower/following counts, video count.",
	},
	{
		Platform: "tiktok", Name: "get_user_info_with_region",
		Description: "Fetches user information including region-specific data.",
		Params:      []ParamSpec{{Name: "uniqueId", Type: "string", Required: true}},
		Returns:     "User object, similar to get_user_info with additional region data.",
	},
	{
		Platform: "tiktok", Name: "get_user_info_by_id",
		Description: "Fetches user information by numerical user ID.",
		Params:      []ParamSpec{{Name: "userId", Type: "string", Required: true}},
		Returns:     "User object.",
	},
	{
		Platform: "tiktok", Name: "get_user_followers",
		Description: "Fetches a list of a user's followers. secUid is obtained from user info calls; minCursor pages the results.",
		Params: []ParamSpec{
			{Name: "secUid", Type: "string", Required: true},
			{Name: "count", Type: "int", Default: 30},
			{Name: "minCursor", Type: "int", Default: 0},
		},
		Returns: "List of follower user objects.",
	},
	{
		Platform: "tiktok", Name: "get_user_followings",
		Description: "Fetches a list of users a user is following.",
		Params: []ParamSpec{
			{Name: "secUid", Type: "string", Required: true},
			{Name: "count", Type: "int", Default: 30},
			{Name: "minCursor", Type: "int", Default: 0},
			{Name: "maxCursor", Type: "int", Default: 0},
		},
		Returns: "List of user objects they follow.",
	},
	{
		Platform: "tiktok", Name: "get_user_posts",
		Description: "Fetches a user's posts/videos.",
		Params: []ParamSpec{
			{Name: "secUid", Type: "string", Required: true},
			{Name: "count", Type: "int", Default: 35},
			{Name: "cursor", Type: "int", Default: 0},
		},
		Returns: "List of video/post objects, each containing videoId, description, stats, author info.",
	},
	{
		Platform: "tiktok", Name: "get_user_popular_posts",
		Description: "Fetches a user's popular posts.",
		Params: []ParamSpec{
			{Name: "secUid", Type: "string", Required: true},
			{Name: "count", Type: "int", Default: 35},
			{Name: "cursor", Type: "int", Default: 0},
		},
		Returns: "List of popular video/post objects.",
	},
	{
		Platform: "tiktok", Name: "get_user_oldest_posts",
		Description: "Fetches a user's oldest posts.",
		Params: []ParamSpec{
			{Name: "secUid", Type: "string", Required: true},
			{Name: "count", Type: "int", Default: 30},
			{Name: "cursor", Type: "int", Default: 0},
		},
		Returns: "List of oldest video/post objects.",
	},
	{
		Platform: "tiktok", Name: "get_user_liked_posts",
		Description: "Fetches posts a user has liked.",
		Params: []ParamSpec{
			{Name: "secUid", Type: "string", Required: true},
			{Name: "count", Type: "int", Default: 30},
			{Name: "cursor", Type: "int", Default: 0},
		},
		Returns: "List of video/post objects.",
	},
	{
		Platform: "tiktok", Name: "get_user_playlist",
		Description: "Fetches a user's playlists.",
		Params: []ParamSpec{
			{Name: "secUid", Type: "string", Required: true},
			{Name: "count", Type: "int", Default: 20},
			{Name: "cursor", Type: "int", Default: 0},
		},
		Returns: "List of playlists.",
	},
	{
		Platform: "tiktok", Name: "get_user_repost",
		Description: "Fetches posts a user has reposted.",
		Params: []ParamSpec{
			{Name: "secUid", Type: "string", Required: true},
			{Name: "count", Type: "int", Default: 30},
			{Name: "cursor", Type: "int", Default: 0},
		},
		Returns: "List of reposted video/post objects.",
	},
	{
		Platform: "tiktok", Name: "search_general",
		Description: "General search, top results for a keyword. search_id is often a string.",
		Params: []ParamSpec{
			{Name: "keyword", Type: "string", Required: true},
			{Name: "cursor", Type: "int", Default: 0},
			{Name: "search_id", Type: "string", Default: "0"},
		},
		Returns: "Mixed list of search results (videos, users, etc.).",
	},
	{
		Platform: "tiktok", Name: "search_video",
		Description: "Searches for videos by keyword.",
		Params: []ParamSpec{
			{Name: "keyword", Type: "string", Required: true},
			{Name: "cursor", Type: "int", Default: 0},
			{Name: "search_id", Type: "string", Default: "0"},
		},
		Returns: "List of video objects. Each video includes videoId, description, author (uniqueId, secUid).",
	},
	{
		Platform: "tiktok", Name: "search_account",
		Description: "Searches for user accounts by keyword.",
		Params: []ParamSpec{
			{Name: "keyword", Type: "string", Required: true},
			{Name: "cursor", Type: "int", Default: 0},
			{Name: "search_id", Type: "string", Default: "0"},
		},
		Returns: "List of user objects.",
	},
	{
		Platform: "tiktok", Name: "search_live",
		Description: "Searches for live streams by keyword.",
		Params: []ParamSpec{
			{Name: "keyword", Type: "string", Required: true},
			{Name: "cursor", Type: "int", Default: 0},
			{Name: "search_id", Type: "string", Default: "0"},
		},
		Returns: "List of live stream results or user accounts.",
	},
	{
		Platform: "tiktok", Name: "get_post_detail",
		Description: "Fetches details for a specific post/video.",
		Params:      []ParamSpec{{Name: "videoId", Type: "string", Required: true}},
		Returns:     "Detailed video/post object.",
	},
	{
		Platform: "tiktok", Name: "get_post_comments",
		Description: "Fetches comments for a specific post/video.",
		Params: []ParamSpec{
			{Name: "videoId", Type: "string", Required: true},
			{Name: "count", Type: "int", Default: 50},
			{Name: "cursor", Type: "int", Default: 0},
		},
		Returns: "List of comment objects. Each comment includes text, author (uniqueId, secUid), commentId.",
	},
	{
		Platform: "tiktok", Name: "get_post_comment_replies",
		Description: "Fetches replies to a specific comment on a post.",
		Params: []ParamSpec{
			{Name: "videoId", Type: "string", Required: true},
			{Name: "commentId", Type: "string", Required: true},
			{Name: "count", Type: "int", Default: 6},
			{Name: "cursor", Type: "int", Default: 0},
		},
		Returns: "List of reply comment objects.",
	},
	{
		Platform: "tiktok", Name: "get_post_related",
		Description: "Fetches posts related to a specific post/video.",
		Params: []ParamSpec{
			{Name: "videoId", Type: "string", Required: true},
			{Name: "count", Type: "int", Default: 16},
			{Name: "cursor", Type: "int", Default: 0},
		},
		Returns: "List of related video/post objects.",
	},
	{
		Platform: "tiktok", Name: "get_post_trending",
		Description: "Fetches trending posts/videos.",
		Params:      []ParamSpec{{Name: "count", Type: "int", Default: 16}},
		Returns:     "List of trending video/post objects.",
	},
	{
		Platform: "tiktok", Name: "download_video",
		Description: "Downloads a video given its page URL.",
		Params:      []ParamSpec{{Name: "url", Type: "string", Required: true}},
		Returns:     "Information about the download, potentially a direct link or status.",
	},
	{
		Platform: "tiktok", Name: "get_video_download_url",
		Description: "Resolves the direct playable links (play / play_watermark) for a video without downloading it.",
		Params:      []ParamSpec{{Name: "url", Type: "string", Required: true}},
		Returns:     "Object with play and play_watermark direct URLs.",
	},
	{
		Platform: "tiktok", Name: "download_video_by_url",
		Description: "Downloads a video to local storage given its direct playable URL.",
		Params:      []ParamSpec{{Name: "play_url", Type: "string", Required: true}},
		Returns:     "Object with file_path of the downloaded video, or an error field.",
	},

	// LinkedIn
	{
		Platform: "linkedin", Name: "get_profile_by_username",
		Description: "Fetches a LinkedIn profile by public username.",
		Params:      []ParamSpec{{Name: "username", Type: "string", Required: true}},
		Returns:     "Profile object with headline, summary, positions, etc.",
	},
	{
		Platform: "linkedin", Name: "get_profile_by_url",
		Description: "Fetches a LinkedIn profile by its public URL.",
		Params:      []ParamSpec{{Name: "url", Type: "string", Required: true}},
		Returns:     "Profile object.",
	},
	{
		Platform: "linkedin", Name: "search_people_by_url",
		Description: "Searches people using a LinkedIn search URL.",
		Params:      []ParamSpec{{Name: "url", Type: "string", Required: true}},
		Returns:     "List of profile summaries.",
	},
	{
		Platform: "linkedin", Name: "get_profile_recent_activity_time",
		Description: "Fetches the time of a profile's most recent activity.",
		Params:      []ParamSpec{{Name: "username", Type: "string", Required: true}},
		Returns:     "Recent activity timestamp information.",
	},
	{
		Platform: "linkedin", Name: "get_profile_posts",
		Description: "Fetches recent posts published by a profile.",
		Params:      []ParamSpec{{Name: "username", Type: "string", Required: true}},
		Returns:     "List of post objects with text, urn, reactions.",
	},
	{
		Platform: "linkedin", Name: "get_company_details",
		Description: "Fetches company details by company username.",
		Params:      []ParamSpec{{Name: "username", Type: "string", Required: true}},
		Returns:     "Company object.",
	},
	{
		Platform: "linkedin", Name: "get_company_by_domain",
		Description: "Fetches company details by web domain.",
		Params:      []ParamSpec{{Name: "domain", Type: "string", Required: true}},
		Returns:     "Company object.",
	},
	{
		Platform: "linkedin", Name: "get_post_by_url",
		Description: "Fetches a single post by its URL.",
		Params:      []ParamSpec{{Name: "url", Type: "string", Required: true}},
		Returns:     "Post object.",
	},
	{
		Platform: "linkedin", Name: "get_user_articles",
		Description: "Fetches articles written by a user.",
		Params: []ParamSpec{
			{Name: "url", Type: "string", Required: true},
			{Name: "username", Type: "string", Required: true},
			{Name: "page", Type: "int", Default: 1},
		},
		Returns: "List of article objects.",
	},
	{
		Platform: "linkedin", Name: "get_profile_post_and_comments",
		Description: "Fetches a post and its comments by post urn.",
		Params:      []ParamSpec{{Name: "urn", Type: "string", Required: true}},
		Returns:     "Post object with comments.",
	},
	{
		Platform: "linkedin", Name: "get_profile_posts_comments",
		Description: "Fetches comments on a post, sorted and paginated.",
		Params: []ParamSpec{
			{Name: "urn", Type: "string", Required: true},
			{Name: "sort", Type: "string", Default: "mostRelevant"},
			{Name: "page", Type: "int", Default: 1},
		},
		Returns: "List of comment objects.",
	},
	{
		Platform: "linkedin", Name: "get_profile_comments",
		Description: "Fetches comments made by a profile.",
		Params:      []ParamSpec{{Name: "username", Type: "string", Required: true}},
		Returns:     "List of comment objects.",
	},
	{
		Platform: "linkedin", Name: "get_connection_count",
		Description: "Fetches the connection count for a profile.",
		Params:      []ParamSpec{{Name: "username", Type: "string", Required: true}},
		Returns:     "Connection count.",
	},
	{
		Platform: "linkedin", Name: "get_data_connection_count",
		Description: "Fetches connection and follower counts for a profile.",
		Params:      []ParamSpec{{Name: "username", Type: "string", Required: true}},
		Returns:     "Connection and follower counts.",
	},
	{
		Platform: "linkedin", Name: "get_given_recommendations",
		Description: "Fetches recommendations a profile has given.",
		Params: []ParamSpec{
			{Name: "username", Type: "string", Required: true},
			{Name: "start", Type: "int", Default: 0},
		},
		Returns: "List of recommendation objects.",
	},
	{
		Platform: "linkedin", Name: "get_received_recommendations",
		Description: "Fetches recommendations a profile has received.",
		Params: []ParamSpec{
			{Name: "username", Type: "string", Required: true},
			{Name: "start", Type: "int", Default: 0},
		},
		Returns: "List of recommendation objects.",
	},
	{
		Platform: "linkedin", Name: "get_profile_likes",
		Description: "Fetches posts a profile has liked.",
		Params: []ParamSpec{
			{Name: "username", Type: "string", Required: true},
			{Name: "start", Type: "int", Default: 0},
		},
		Returns: "List of liked post objects.",
	},
	{
		Platform: "linkedin", Name: "profile_data_connection_count_posts",
		Description: "Fetches profile data together with connection count and posts.",
		Params:      []ParamSpec{{Name: "username", Type: "string", Required: true}},
		Returns:     "Combined profile, connection count and posts object.",
	},
	{
		Platform: "linkedin", Name: "all_profile_data",
		Description: "Fetches all available data for a profile in one call.",
		Params:      []ParamSpec{{Name: "username", Type: "string", Required: true}},
		Returns:     "Full profile data object.",
	},
	{
		Platform: "linkedin", Name: "similar_profiles",
		Description: "Fetches profiles similar to the one at the given URL.",
		Params:      []ParamSpec{{Name: "url", Type: "string", Required: true}},
		Returns:     "List of similar profile summaries.",
	},
	{
		Platform: "linkedin", Name: "profiles_position_skills",
		Description: "Fetches a profile's positions and skills.",
		Params:      []ParamSpec{{Name: "username", Type: "string", Required: true}},
		Returns:     "Positions and skills data.",
	},
	{
		Platform: "linkedin", Name: "get_company_details_by_id",
		Description: "Fetches company details by numeric company ID.",
		Params:      []ParamSpec{{Name: "id", Type: "string", Required: true}},
		Returns:     "Company object.",
	},

	// Video download helper
	{
		Platform: "videodl", Name: "download_video_by_url",
		Description: "Downloads a video to local temporary storage given a direct playable URL and returns the local path.",
		Params:      []ParamSpec{{Name: "play_url", Type: "string", Required: true}},
		Returns:     "Object with file_path of the downloaded file, or an error field.",
	},

	// Content understanding
	{
		Platform: "content", Name: "analyze_video",
		Description: "Runs the configured video analyzer over a locally downloaded video file and returns the analysis (description, sentiment, segments).",
		Params:      []ParamSpec{{Name: "file_path", Type: "string", Required: true}},
		Returns:     "Structured analysis result for the video.",
	},
	{
		Platform: "content", Name: "create_or_update_analyzer",
		Description: "Creates or updates the custom video analyzer. request_body carries the analyzer configuration; omitted means the default schema.",
		Params:      []ParamSpec{{Name: "request_body", Type: "object", Default: nil}},
		Returns:     "Analyzer operation acknowledgement with operationId.",
	},
	{
		Platform: "content", Name: "get_operation_status",
		Description: "Queries the status of an analyzer create/update operation.",
		Params:      []ParamSpec{{Name: "operation_id", Type: "string", Required: true}},
		Returns:     "Operation status object.",
	},
	{
		Platform: "content", Name: "get_analysis_result",
		Description: "Fetches a finished analysis result by result ID.",
		Params:      []ParamSpec{{Name: "result_id", Type: "string", Required: true}},
		Returns:     "Analysis result object.",
	},
}
